package app

import (
	"go.uber.org/zap"

	"library-admin/internal/core/config"
	"library-admin/internal/core/logger"
)

// NewLogger 按配置决定是否写滚动文件；每条日志带上 app 与 env
func NewLogger(c *config.Config) (*zap.Logger, func()) {
	f := c.Log.File
	return logger.Build(logger.Options{
		Level:       c.Log.Level,
		JSON:        c.Log.JSON,
		AddCaller:   true,
		Development: !c.Log.JSON,
		Fields:      []zap.Field{zap.String("app", c.App.Name), zap.String("env", c.App.Env)},
		Rotate: logger.FileRotate{
			Enable:     f.Enable,
			Filename:   f.Filename,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		},
	})
}
