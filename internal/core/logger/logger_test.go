package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuildJSON(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "info", JSON: true, Output: &buf, Fields: []zap.Field{zap.String("app", "library-admin")}})
	l.Debug("hidden")
	l.Info("book issued", zap.Uint("item_id", 7))
	cleanup()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if entry["msg"] != "book issued" || entry["item_id"] != float64(7) || entry["app"] != "library-admin" {
		t.Fatalf("entry = %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing ts key: %v", entry)
	}
}

func TestBuildBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "loud", JSON: true, Output: &buf})
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be disabled")
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be enabled")
	}
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "debug", JSON: true, Output: &buf})
	w := ToWriter(l, zapcore.DebugLevel)
	if _, err := w.Write([]byte("[GIN-debug] GET /health\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = l.Sync()
	if !strings.Contains(buf.String(), `"msg":"[GIN-debug] GET /health"`) {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestBuildWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "library.log")
	l, cleanup := Build(Options{
		Level:  "info",
		JSON:   true,
		Output: io.Discard,
		Rotate: FileRotate{Enable: true, Filename: path, MaxSizeMB: 1},
	})
	l.Info("fine assessed", zap.Float64("amount", 30))
	cleanup()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), "fine assessed") {
		t.Fatalf("log file = %q", raw)
	}
}
