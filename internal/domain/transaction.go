package domain

import (
	"context"
	"time"
)

// Transaction is one issue/return cycle of an item to a membership.
type Transaction struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ItemID           uint       `gorm:"index;not null" json:"itemId"`
	MembershipID     uint       `gorm:"index;not null" json:"membershipId"`
	IssueDate        time.Time  `gorm:"type:date;not null" json:"issueDate"`
	ReturnDate       time.Time  `gorm:"type:date;not null;index" json:"returnDate"` // 应还日期
	ActualReturnDate *time.Time `gorm:"type:date;index" json:"actualReturnDate"`
	// ReportedReturnDate holds the hand-in date of a late return until the fine is settled.
	ReportedReturnDate *time.Time `gorm:"type:date" json:"reportedReturnDate,omitempty"`
	FineAmount         float64    `gorm:"not null;default:0" json:"fineAmount"`
	FinePaid           bool       `gorm:"not null;default:false" json:"finePaid"`
	Remarks            *string    `gorm:"size:255" json:"remarks"`

	Item       *Item       `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Membership *Membership `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) Open() bool { return t.ActualReturnDate == nil }

// FineOutstanding 有罚款且未缴
func (t *Transaction) FineOutstanding() bool { return t.FineAmount > 0 && !t.FinePaid }

type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	FindByID(ctx context.Context, id uint) (*Transaction, error)
	Update(ctx context.Context, t *Transaction) error
	ListOpen(ctx context.Context) ([]Transaction, error)
	ListOverdue(ctx context.Context, today time.Time) ([]Transaction, error)
}
