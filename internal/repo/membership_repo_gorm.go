package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"library-admin/internal/domain"
)

type MembershipRepo struct{ db *gorm.DB }

func NewMembershipRepo(db *gorm.DB) *MembershipRepo { return &MembershipRepo{db: db} }

func (r *MembershipRepo) Create(ctx context.Context, m *domain.Membership) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MembershipRepo) FindByID(ctx context.Context, id uint) (*domain.Membership, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *MembershipRepo) FindByNationalID(ctx context.Context, nationalID string) (*domain.Membership, error) {
	return r.first(ctx, "national_id = ?", nationalID)
}

func (r *MembershipRepo) first(ctx context.Context, query string, arg any) (*domain.Membership, error) {
	var m domain.Membership
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepo) List(ctx context.Context) ([]domain.Membership, error) {
	var ms []domain.Membership
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *MembershipRepo) Update(ctx context.Context, m *domain.Membership) error {
	return translate(r.db.WithContext(ctx).Save(m).Error)
}
