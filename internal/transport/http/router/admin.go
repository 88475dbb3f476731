package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-admin/internal/core/server"
	mdw "library-admin/internal/transport/http/middleware"
)

// NewAdminEngine 管理端 v1（统一要求 admin 身份）
func NewAdminEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := server.NewRouter(l, middlewares(l, "admin")...)
	reg := Modules(l, d)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.BasicAuth(d.Auth), mdw.RequireAdmin())
	reg.MountAllAdmin(admin)

	return r
}
