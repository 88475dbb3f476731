package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-admin/internal/domain"
	"library-admin/internal/service"
	httpez "library-admin/internal/transport/http/ez"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: l}
}

type loginIn struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// MountPublic POST /auth/login：只校验凭证并返回身份，不发 token
func (h *AuthHandler) MountPublic(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)
	httpez.Register(ez, httpez.Action[loginIn, domain.Identity]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindAuto,
		Public: true,
		Handler: func(c *gin.Context, _ domain.Identity, in *loginIn) (domain.Identity, error) {
			return h.auth.Authenticate(c.Request.Context(), strings.TrimSpace(in.Username), in.Password)
		},
	})
}

// MountAPI GET /me
func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)
	httpez.Register(ez, httpez.Action[struct{}, domain.Identity]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Handler: func(_ *gin.Context, id domain.Identity, _ *struct{}) (domain.Identity, error) {
			return id, nil
		},
	})
}

// Priority 登录相关最先挂载
func (h *AuthHandler) Priority() int { return 10 }
