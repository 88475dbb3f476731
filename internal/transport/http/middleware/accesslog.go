package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "library-admin/internal/transport/http/response"
)

// AccessLog 每个请求一行；HTTP 状态恒为 200，级别按业务码决定
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		code := resp.CodeOf(c)
		fields := []zap.Field{
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("route", routeOf(c)),
			zap.Int("status", c.Writer.Status()),
			zap.Int("code", code),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.Int("size", c.Writer.Size()),
		}
		// 凭证在 Authorization 头里，只记用户名
		if id, ok := IdentityFrom(c); ok {
			fields = append(fields, zap.String("user", id.Username), zap.Bool("admin", id.IsAdmin))
		}

		switch {
		case len(c.Errors) > 0:
			l.Error("HTTP", append(fields, zap.String("errors", c.Errors.String()))...)
		case code >= resp.CodeServerError:
			l.Error("HTTP", fields...)
		case code >= resp.CodeBadRequest:
			l.Warn("HTTP", fields...)
		default:
			l.Info("HTTP", fields...)
		}
	}
}

// routeOf 未匹配路由时退回原始路径
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
