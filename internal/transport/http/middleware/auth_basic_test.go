package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"library-admin/internal/domain"
	resp "library-admin/internal/transport/http/response"
)

type fakeAuth map[string]domain.Identity

func (f fakeAuth) Authenticate(_ context.Context, username, password string) (domain.Identity, error) {
	id, ok := f[username+":"+password]
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := fakeAuth{
		"admin:admin": {UserID: 1, Username: "admin", IsAdmin: true},
		"user:user":   {UserID: 2, Username: "user"},
	}
	r := gin.New()
	g := r.Group("", BasicAuth(auth))
	g.GET("/me", func(c *gin.Context) {
		id, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, resp.OK(id))
	})
	g.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })
	return r
}

func call(t *testing.T, r http.Handler, path, user, pass string) (*httptest.ResponseRecorder, resp.Resp) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out resp.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w, out
}

func TestBasicAuth(t *testing.T) {
	r := newEngine()

	w, out := call(t, r, "/me", "", "")
	if out.Code != resp.CodeUnauthorized || w.Header().Get("WWW-Authenticate") == "" {
		t.Fatalf("no credentials: code=%d header=%q", out.Code, w.Header().Get("WWW-Authenticate"))
	}
	if _, out = call(t, r, "/me", "user", "wrong"); out.Code != resp.CodeUnauthorized {
		t.Fatalf("bad password code = %d", out.Code)
	}
	_, out = call(t, r, "/me", "user", "user")
	if out.Code != resp.CodeOK {
		t.Fatalf("code = %d (%s)", out.Code, out.Msg)
	}
	if data, _ := out.Data.(map[string]any); data["username"] != "user" || data["isAdmin"] != false {
		t.Fatalf("data = %v", out.Data)
	}
}

func TestRequireAdmin(t *testing.T) {
	r := newEngine()
	if _, out := call(t, r, "/admin", "user", "user"); out.Code != resp.CodeForbidden {
		t.Fatalf("user code = %d", out.Code)
	}
	if _, out := call(t, r, "/admin", "admin", "admin"); out.Code != resp.CodeOK {
		t.Fatalf("admin code = %d", out.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "rid-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(KeyRequestID) != "rid-123" || w.Body.String() != "rid-123" {
		t.Fatalf("header=%q body=%q", w.Header().Get(KeyRequestID), w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get(KeyRequestID)) != 36 {
		t.Fatalf("generated id = %q", w.Header().Get(KeyRequestID))
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(0.001, 1))
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })

	if _, out := call(t, r, "/", "", ""); out.Code != resp.CodeOK {
		t.Fatalf("first code = %d", out.Code)
	}
	if _, out := call(t, r, "/", "", ""); out.Code != resp.CodeTooManyRequests {
		t.Fatalf("second code = %d", out.Code)
	}
}
