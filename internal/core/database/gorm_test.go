package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func TestMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass string
		wantUser, wantPass   string
		wantAddr, wantDB     string
	}{
		{
			name: "driver dsn", in: "root:pw@tcp(127.0.0.1:3306)/library",
			wantUser: "root", wantPass: "pw", wantAddr: "127.0.0.1:3306", wantDB: "library",
		},
		{
			name: "jdbc url with overrides", in: "jdbc:mysql://db:3306/library", user: "lib", pass: "secret",
			wantUser: "lib", wantPass: "secret", wantAddr: "db:3306", wantDB: "library",
		},
		{
			name: "url credentials", in: "mysql://a:b@h:1/d",
			wantUser: "a", wantPass: "b", wantAddr: "h:1", wantDB: "d",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dsn, err := mysqlDSN(tc.in, tc.user, tc.pass)
			if err != nil {
				t.Fatalf("mysqlDSN: %v", err)
			}
			cfg, err := mysqldrv.ParseDSN(dsn)
			if err != nil {
				t.Fatalf("parse %q: %v", dsn, err)
			}
			if cfg.User != tc.wantUser || cfg.Passwd != tc.wantPass || cfg.Addr != tc.wantAddr || cfg.DBName != tc.wantDB {
				t.Fatalf("cfg = %s@%s/%s (pass %q)", cfg.User, cfg.Addr, cfg.DBName, cfg.Passwd)
			}
			if !cfg.ParseTime || cfg.Loc != time.UTC {
				t.Fatalf("parseTime=%v loc=%v", cfg.ParseTime, cfg.Loc)
			}
		})
	}

	if _, err := mysqlDSN("not a dsn", "", ""); err == nil {
		t.Fatal("expected error for malformed dsn")
	}
}

func TestMaskDSN(t *testing.T) {
	if got := maskDSN("root:pw@tcp(h:1)/d"); got != "root:****@tcp(h:1)/d" {
		t.Fatalf("got %q", got)
	}
}

func TestNewGormUnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	if !errors.Is(err, gorm.ErrInvalidDB) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewGormSQLite(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "nested", "lib.db"), LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var one int
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil || one != 1 {
		t.Fatalf("select 1 = %d, %v", one, err)
	}
}
