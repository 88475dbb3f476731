package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"library-admin/internal/domain"
)

type TransactionRepo struct{ db *gorm.DB }

func NewTransactionRepo(db *gorm.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *TransactionRepo) FindByID(ctx context.Context, id uint) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.WithContext(ctx).Preload("Item").Preload("Membership").First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update 只写自身列，不级联关联
func (r *TransactionRepo) Update(ctx context.Context, t *domain.Transaction) error {
	return r.db.WithContext(ctx).Omit("Item", "Membership").Save(t).Error
}

func (r *TransactionRepo) ListOpen(ctx context.Context) ([]domain.Transaction, error) {
	return r.list(r.db.WithContext(ctx).Where("actual_return_date IS NULL"))
}

func (r *TransactionRepo) ListOverdue(ctx context.Context, today time.Time) ([]domain.Transaction, error) {
	return r.list(r.db.WithContext(ctx).
		Where("actual_return_date IS NULL AND return_date < ?", domain.DateOf(today)))
}

func (r *TransactionRepo) list(q *gorm.DB) ([]domain.Transaction, error) {
	var ts []domain.Transaction
	if err := q.Preload("Item").Preload("Membership").Order("id asc").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}
