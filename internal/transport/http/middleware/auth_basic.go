package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"library-admin/internal/domain"
	resp "library-admin/internal/transport/http/response"
)

const (
	KeyIdentity = "identity"
	realm       = `Basic realm="library"`
)

// Authenticator 凭证校验（service.AuthService 实现）
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (domain.Identity, error)
}

// BasicAuth 每个请求携带 HTTP Basic 凭证，校验一次后把 Identity 放进上下文
func BasicAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			AbortUnauthorized(c, "missing credentials")
			return
		}
		id, err := a.Authenticate(c.Request.Context(), username, password)
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			AbortUnauthorized(c, "incorrect username or password")
			return
		case err != nil:
			_ = c.Error(err)
			resp.Abort(c, resp.CodeServerError, "credential check failed")
			return
		}
		c.Set(KeyIdentity, id)
		c.Next()
	}
}

// RequireAdmin 维护类分组使用，需排在 BasicAuth 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			AbortUnauthorized(c, "unauthorized")
			return
		}
		if err := id.RequireAdmin(); err != nil {
			resp.Abort(c, resp.CodeForbidden, "not authorized")
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(KeyIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}

func AbortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", realm)
	resp.Abort(c, resp.CodeUnauthorized, msg)
}
