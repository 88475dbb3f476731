package main

import (
	"context"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"library-admin/internal/app"
	"library-admin/internal/core/config"
	"library-admin/internal/core/logger"
	"library-admin/internal/core/server"
	"library-admin/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	// 数据库（失败会直接 Fatal）
	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	// 默认账号 admin/admin、user/user
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := a.Seed(ctx); err != nil {
		log.Error("seed default users", zap.Error(err))
	}
	cancel()

	r := router.NewAPIEngine(log, a.Deps)

	h := cfg.App.HTTP
	srv := server.BuildServer(
		server.Addr(h.Host, h.Port), r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	baseURL := server.BaseURL(h.Host, h.Port)
	log.Info("library api",
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)
	server.Run(srv, log, "library api")
}
