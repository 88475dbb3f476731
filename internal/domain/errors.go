// Package domain holds the library entities, the repository contracts the
// services depend on, and the error taxonomy shared by every layer. Handlers
// translate these sentinels into response codes with errors.Is.
package domain

import "errors"

var (
	// ErrUnauthorized: unknown username or wrong password.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden: a non-admin identity attempted a maintenance operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: no membership, item, user or transaction with that id.
	ErrNotFound = errors.New("not found")
	// ErrNotAvailable: the item is missing or already issued.
	ErrNotAvailable = errors.New("not available")
	// ErrInvalidDate: issue/return dates violate the loan window or cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrConflict: a unique field is already taken, or the state forbids the change.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput: a required field is empty or outside its enumeration.
	ErrInvalidInput = errors.New("invalid input")
)
