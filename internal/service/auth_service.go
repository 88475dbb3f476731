package service

import (
	"context"

	"go.uber.org/zap"

	"library-admin/internal/domain"
)

// AuthService 校验用户名/密码（明文比较，无锁定、无限流）
type AuthService struct {
	store domain.Store
	log   *zap.Logger
}

func NewAuthService(store domain.Store, l *zap.Logger) *AuthService {
	return &AuthService{store: store, log: l}
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	u, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return domain.Identity{}, err
	}
	if u == nil || u.Password != password {
		s.log.Debug("credential check failed", zap.String("username", username))
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return u.Identity(), nil
}
