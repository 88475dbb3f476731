package domain

import (
	"context"
	"time"
)

// 馆藏状态
const (
	StatusAvailable = "Available"
	StatusIssued    = "Issued"
)

// Item is a book or a movie; both share the items table.
type Item struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null;index" json:"title"`
	Author       string    `gorm:"size:255;index" json:"author"`
	Genre        string    `gorm:"size:64" json:"genre"`
	SerialNumber string    `gorm:"uniqueIndex;size:64;not null" json:"serialNumber"`
	IsMovie      bool      `gorm:"not null;default:false" json:"isMovie"`
	Status       string    `gorm:"size:16;not null;default:Available" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Item) TableName() string { return "items" }

func (i *Item) Available() bool { return i.Status == StatusAvailable }

// ItemFilter 为 nil 的字段不参与筛选
type ItemFilter struct {
	IsMovie *bool
	Title   string // 模糊匹配
	Author  string // 模糊匹配
}

type ItemRepository interface {
	Create(ctx context.Context, it *Item) error
	FindByID(ctx context.Context, id uint) (*Item, error)
	FindBySerial(ctx context.Context, serial string) (*Item, error)
	List(ctx context.Context, f ItemFilter) ([]Item, error)
	Update(ctx context.Context, it *Item) error
	// SetStatus 仅当当前状态为 from 时切换到 to，返回是否命中
	SetStatus(ctx context.Context, id uint, from, to string) (bool, error)
}
