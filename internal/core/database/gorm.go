package database

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	corelog "library-admin/internal/core/logger"
)

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	Logger             *zap.Logger // 为空时使用 gorm 默认 logger
}

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "", "sqlite":
		dsn, err := sqliteDSN(o.DSN)
		if err != nil {
			return nil, err
		}
		dial = sqlite.Open(dsn)
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dsn, err := mysqlDSN(o.DSN, o.Username, o.Password)
		if err != nil {
			return nil, err
		}
		if o.Logger != nil {
			o.Logger.Info("mysql dsn", zap.String("dsn", maskDSN(dsn)))
		}
		dial = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gormLogger(o.Logger, o.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	db = db.Session(&gorm.Session{
		PrepareStmt:            true, // 预编译缓存
		SkipDefaultTransaction: true, // 只在需要时手动开 Tx
	})
	return db, nil
}

func gormLogger(l *zap.Logger, level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	if l == nil {
		return logger.Default.LogMode(lvl)
	}
	var w *log.Logger
	if std, err := corelog.ToStdLogger(l.Named("gorm"), zapcore.InfoLevel); err == nil {
		w = std
	} else {
		w = log.New(os.Stdout, "", log.LstdFlags)
	}
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// sqliteDSN 确保数据库目录存在，并打开外键与 busy_timeout
func sqliteDSN(in string) (string, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		in = "library.db"
	}
	if in == ":memory:" || strings.HasPrefix(in, "file:") {
		return in, nil
	}
	if dir := filepath.Dir(in); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create db dir: %w", err)
		}
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", in), nil
}

func maskDSN(dsn string) string {
	masked := dsn
	if at := strings.Index(masked, "@"); at > 0 {
		if colon := strings.Index(masked[:at], ":"); colon > 0 {
			masked = masked[:colon+1] + "****" + masked[at:]
		}
	}
	return masked
}

// mysqlDSN 接受驱动格式 user:pass@tcp(host)/db 或 mysql:// URL（可带 jdbc: 前缀）。
// 日期列按 UTC 零点存取，所以强制 parseTime 与 loc=UTC。
func mysqlDSN(input, user, pass string) (string, error) {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")

	var cfg *mysqldrv.Config
	if strings.HasPrefix(in, "mysql://") {
		u, err := url.Parse(in)
		if err != nil {
			return "", fmt.Errorf("mysql dsn: %w", err)
		}
		cfg = mysqldrv.NewConfig()
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
	} else {
		parsed, err := mysqldrv.ParseDSN(in)
		if err != nil {
			return "", fmt.Errorf("mysql dsn: %w", err)
		}
		cfg = parsed
	}

	if user != "" {
		cfg.User = user
	}
	if pass != "" {
		cfg.Passwd = pass
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

var ErrUnsupportedDriver = gorm.ErrInvalidDB
