package domain

import (
	"context"
	"fmt"
	"time"
)

// 会员期限类型
const (
	MembershipSixMonths = "6 months"
	MembershipOneYear   = "1 year"
	MembershipTwoYears  = "2 years"
)

var membershipDays = map[string]int{
	MembershipSixMonths: 180,
	MembershipOneYear:   365,
	MembershipTwoYears:  730,
}

// MembershipDays 返回期限类型对应的天数
func MembershipDays(membershipType string) (int, error) {
	days, ok := membershipDays[membershipType]
	if !ok {
		return 0, fmt.Errorf("%w: membership type %q (want %q, %q or %q)",
			ErrInvalidInput, membershipType, MembershipSixMonths, MembershipOneYear, MembershipTwoYears)
	}
	return days, nil
}

// MembershipEndDate end = start + fixed offset of the type.
func MembershipEndDate(start time.Time, membershipType string) (time.Time, error) {
	days, err := MembershipDays(membershipType)
	if err != nil {
		return time.Time{}, err
	}
	return AddDays(start, days), nil
}

type Membership struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FirstName      string    `gorm:"size:64;not null" json:"firstName"`
	LastName       string    `gorm:"size:64;not null" json:"lastName"`
	ContactName    string    `gorm:"size:128" json:"contactName"`
	ContactAddress string    `gorm:"size:255" json:"contactAddress"`
	NationalID     string    `gorm:"uniqueIndex;size:64;not null" json:"nationalId"`
	StartDate      time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate        time.Time `gorm:"type:date;not null" json:"endDate"`
	MembershipType string    `gorm:"size:16;not null" json:"membershipType"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Membership) TableName() string { return "memberships" }

type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	FindByID(ctx context.Context, id uint) (*Membership, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Membership, error)
	List(ctx context.Context) ([]Membership, error)
	Update(ctx context.Context, m *Membership) error
}
