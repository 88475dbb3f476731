package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"library-admin/internal/domain"
)

// DefaultUsers 启动时补齐的两个账号
func DefaultUsers() []domain.User {
	return []domain.User{
		{Username: "admin", Password: "admin", FullName: "Administrator", IsAdmin: true},
		{Username: "user", Password: "user", FullName: "Regular User", IsAdmin: false},
	}
}

// SeedDefaultUsers 只创建缺失的默认账号，已有账号不动；返回新建的用户名
func SeedDefaultUsers(ctx context.Context, store domain.Store, l *zap.Logger) ([]string, error) {
	var created []string
	for _, u := range DefaultUsers() {
		existing, err := store.Users().FindByUsername(ctx, u.Username)
		if err != nil {
			return created, fmt.Errorf("lookup %s: %w", u.Username, err)
		}
		if existing != nil {
			l.Debug("default user already exists", zap.String("username", u.Username))
			continue
		}
		if err := store.Users().Create(ctx, &u); err != nil {
			return created, fmt.Errorf("create %s: %w", u.Username, err)
		}
		l.Info("default user created", zap.String("username", u.Username), zap.Bool("admin", u.IsAdmin))
		created = append(created, u.Username)
	}
	return created, nil
}

// ResetUsers 清空账号表后重建默认账号
func ResetUsers(ctx context.Context, store domain.Store, l *zap.Logger) (int64, error) {
	var removed int64
	err := store.WithinTx(ctx, func(tx domain.Store) error {
		n, err := tx.Users().DeleteAll(ctx)
		if err != nil {
			return err
		}
		removed = n
		_, err = SeedDefaultUsers(ctx, tx, l)
		return err
	})
	if err != nil {
		return 0, err
	}
	l.Info("users reset", zap.Int64("removed", removed))
	return removed, nil
}
