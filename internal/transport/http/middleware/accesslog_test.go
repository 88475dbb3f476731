package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	resp "library-admin/internal/transport/http/response"
)

func TestAccessLogLevelFollowsCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { resp.Reply(c, resp.OK(nil)) })
	r.GET("/conflict", func(c *gin.Context) { resp.Reply(c, resp.Error(resp.CodeConflict, "")) })
	r.GET("/boom", func(c *gin.Context) { resp.Abort(c, resp.CodeServerError, "") })

	cases := []struct {
		path  string
		level zapcore.Level
		code  int64
	}{
		{"/ok", zapcore.InfoLevel, resp.CodeOK},
		{"/conflict", zapcore.WarnLevel, resp.CodeConflict},
		{"/boom", zapcore.ErrorLevel, resp.CodeServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: http status %d", tc.path, w.Code)
		}

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("%s: %d log entries", tc.path, len(entries))
		}
		e := entries[0]
		if e.Level != tc.level {
			t.Errorf("%s: level = %v, want %v", tc.path, e.Level, tc.level)
		}
		fields := e.ContextMap()
		if fields["code"] != tc.code || fields["route"] != tc.path {
			t.Errorf("%s: fields = %v", tc.path, fields)
		}
		if rid, _ := fields["rid"].(string); rid == "" {
			t.Errorf("%s: missing rid", tc.path)
		}
	}
}

func TestRequestIDRejectsOversized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, strings.Repeat("x", 200))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(KeyRequestID); len(got) != 36 {
		t.Fatalf("request id = %q", got)
	}
}
