package domain

import (
	"context"
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:191;not null" json:"username"`
	Password  string    `gorm:"size:191;not null" json:"-"` // clear text, compared as-is
	FullName  string    `gorm:"size:128" json:"fullName"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Identity 返回该用户作为请求身份时的视图
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username, FullName: u.FullName, IsAdmin: u.IsAdmin}
}

// UserRepository 查不到时返回 (nil, nil)
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	DeleteAll(ctx context.Context) (int64, error)
}
