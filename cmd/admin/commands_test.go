package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`log:
  level: error
db:
  driver: sqlite
  dsn: %s
  autoMigrate: true
  logLevel: silent
library:
  seedDefaultUsers: false
`, filepath.Join(dir, "admin.db"))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSeedThenUsers(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, "seed", "-c", cfg)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "created admin") || !strings.Contains(out, "created user") {
		t.Fatalf("seed output = %q", out)
	}

	out, err = run(t, "seed", "-c", cfg)
	if err != nil || !strings.Contains(out, "already exist") {
		t.Fatalf("second seed = %q, %v", out, err)
	}

	out, err = run(t, "users", "-c", cfg)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if !strings.Contains(out, "USERNAME") || !strings.Contains(out, "admin") {
		t.Fatalf("users output = %q", out)
	}
}

func TestResetUsersNeedsConfirmation(t *testing.T) {
	cfg := writeConfig(t)

	if _, err := run(t, "reset-users", "-c", cfg); err == nil {
		t.Fatal("reset-users without --yes succeeded")
	}
	out, err := run(t, "reset-users", "--yes", "-c", cfg)
	if err != nil {
		t.Fatalf("reset-users: %v", err)
	}
	if !strings.Contains(out, "removed 0 accounts") {
		t.Fatalf("reset output = %q", out)
	}
}

func TestMissingConfigFails(t *testing.T) {
	if _, err := run(t, "users", "-c", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}
