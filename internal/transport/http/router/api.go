package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-admin/internal/core/server"
	"library-admin/internal/service"
	"library-admin/internal/transport/http/handler"
	mdw "library-admin/internal/transport/http/middleware"
)

// Deps 引擎依赖的服务
type Deps struct {
	Auth        *service.AuthService
	Catalog     *service.CatalogService
	Circulation *service.CirculationService
	Reports     *service.ReportService
}

// Modules 把全部功能模块登记到同一个 Registry，API 与管理端各取所需
func Modules(l *zap.Logger, d Deps) *Registry {
	reg := &Registry{}
	reg.Register(
		handler.NewAuthHandler(d.Auth, l),
		handler.NewCatalogHandler(d.Catalog, l),
		handler.NewCirculationHandler(d.Circulation, l),
		handler.NewReportHandler(d.Reports, l),
	)
	return reg
}

func middlewares(l *zap.Logger, engine string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		mdw.Recovery(l),
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1 << 20),
		mdw.Timeout(10 * time.Second),
		mdw.Metrics(engine),
		mdw.AccessLog(l),
	}
}

// NewAPIEngine 用户端：报表与借还，所有登录用户可用
func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := server.NewRouter(l, middlewares(l, "api")...)
	reg := Modules(l, d)

	public := r.Group("/api/v1")
	reg.MountAllPublic(public)

	// 每个请求都做一次凭证校验
	authed := r.Group("/api/v1")
	authed.Use(mdw.BasicAuth(d.Auth))
	reg.MountAllAPI(authed)

	return r
}
