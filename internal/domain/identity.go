package domain

import "fmt"

// Identity 是一次请求经过凭证校验后的调用者
type Identity struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	IsAdmin  bool   `json:"isAdmin"`
}

// RequireAdmin 维护类操作统一在这里做能力校验
func (i Identity) RequireAdmin() error {
	if !i.IsAdmin {
		return fmt.Errorf("%w: admin rights required", ErrForbidden)
	}
	return nil
}
