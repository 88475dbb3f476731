package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"library-admin/internal/domain"
)

// Store is the gorm-backed domain.Store.
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() domain.UserRepository             { return NewUserRepo(s.db) }
func (s *Store) Memberships() domain.MembershipRepository { return NewMembershipRepo(s.db) }
func (s *Store) Items() domain.ItemRepository             { return NewItemRepo(s.db) }
func (s *Store) Transactions() domain.TransactionRepository {
	return NewTransactionRepo(s.db)
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Models 需要建表的全部模型（无迁移机制，表不存在时创建）
func Models() []any {
	return []any{&domain.User{}, &domain.Membership{}, &domain.Item{}, &domain.Transaction{}}
}

// AutoMigrate 建表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// translate 把唯一约束冲突映射成 domain.ErrConflict
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isDupKey(err) {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	return err
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey：该错误仅在开启 TranslateError 时返回
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
