package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type DB struct {
	Driver             string // sqlite | mysql | postgres
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Library 借阅规则
type Library struct {
	FinePerDay       float64 // 每逾期一天的罚款
	MaxLoanDays      int     // 应还日期距借出日期的最大天数
	SeedDefaultUsers bool    // 启动时补齐 admin/user 两个默认账号
}

type Config struct {
	App     App
	Log     Log
	DB      DB
	Library Library
}

const defaultPath = "./configs/config.local.yaml"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "library-admin")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("app.admin.readTimeoutSec", 5)
	v.SetDefault("app.admin.writeTimeoutSec", 10)
	v.SetDefault("app.admin.idleTimeoutSec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.filename", "logs/library.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "library.db")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("library.finePerDay", 10.0)
	v.SetDefault("library.maxLoanDays", 15)
	v.SetDefault("library.seedDefaultUsers", true)
}

// Load 读取 YAML 配置；APP_ 前缀的环境变量覆盖文件（如 APP_DB_DSN）。
// 未显式指定且默认文件不存在时只使用默认值。
func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}

func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := true
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = defaultPath
			explicit = false
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if explicit || !errors.As(err, &pathErr) {
			return nil, err
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
