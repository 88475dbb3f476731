// Package app wires configuration, storage and services together for the
// binaries under cmd/.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-admin/internal/core/config"
	"library-admin/internal/core/database"
	"library-admin/internal/repo"
	"library-admin/internal/service"
	"library-admin/internal/transport/http/router"
)

type App struct {
	Cfg   *config.Config
	Log   *zap.Logger
	DB    *gorm.DB
	Store *repo.Store
	Deps  router.Deps
}

// New 打开数据库、按需建表并组装服务
func New(cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}

	store := repo.NewStore(db)
	rules := service.Rules{FinePerDay: cfg.Library.FinePerDay, MaxLoanDays: cfg.Library.MaxLoanDays}
	return &App{
		Cfg:   cfg,
		Log:   l,
		DB:    db,
		Store: store,
		Deps: router.Deps{
			Auth:        service.NewAuthService(store, l),
			Catalog:     service.NewCatalogService(store, l),
			Circulation: service.NewCirculationService(store, rules, l),
			Reports:     service.NewReportService(store),
		},
	}, nil
}

// Seed 配置开启时补齐默认账号
func (a *App) Seed(ctx context.Context) error {
	if !a.Cfg.Library.SeedDefaultUsers {
		return nil
	}
	_, err := service.SeedDefaultUsers(ctx, a.Store, a.Log)
	return err
}

func (a *App) Close() {
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
