package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"library-admin/internal/domain"
)

type ItemRepo struct{ db *gorm.DB }

func NewItemRepo(db *gorm.DB) *ItemRepo { return &ItemRepo{db: db} }

func (r *ItemRepo) Create(ctx context.Context, it *domain.Item) error {
	return translate(r.db.WithContext(ctx).Create(it).Error)
}

func (r *ItemRepo) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ItemRepo) FindBySerial(ctx context.Context, serial string) (*domain.Item, error) {
	return r.first(ctx, "serial_number = ?", serial)
}

func (r *ItemRepo) first(ctx context.Context, query string, arg any) (*domain.Item, error) {
	var it domain.Item
	err := r.db.WithContext(ctx).First(&it, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) List(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	q := r.db.WithContext(ctx).Model(&domain.Item{})
	if f.IsMovie != nil {
		q = q.Where("is_movie = ?", *f.IsMovie)
	}
	if s := strings.TrimSpace(f.Title); s != "" {
		q = q.Where("title LIKE ? ESCAPE '!'", likeContains(s))
	}
	if s := strings.TrimSpace(f.Author); s != "" {
		q = q.Where("author LIKE ? ESCAPE '!'", likeContains(s))
	}
	var items []domain.Item
	if err := q.Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// likeEscaper 用户输入里的 % 和 _ 按字面匹配；转义符用 ! 以兼容 MySQL 的反斜杠处理
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func likeContains(s string) string { return "%" + likeEscaper.Replace(s) + "%" }

func (r *ItemRepo) Update(ctx context.Context, it *domain.Item) error {
	return translate(r.db.WithContext(ctx).Save(it).Error)
}

func (r *ItemRepo) SetStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
