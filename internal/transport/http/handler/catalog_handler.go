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

// CatalogHandler 会员 / 馆藏 / 账号维护（管理端），馆藏详情对所有登录用户开放
type CatalogHandler struct {
	catalog *service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, l *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: l}
}

func (h *CatalogHandler) MountAPI(g *gin.RouterGroup) {
	h.mountGetItem(httpez.New(g, h.log))
}

func (h *CatalogHandler) mountGetItem(ez httpez.EZ) {
	httpez.Register(ez, httpez.Action[struct{}, *domain.Item]{
		Method: http.MethodGet,
		Path:   "/items/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ domain.Identity, _ *struct{}) (*domain.Item, error) {
			id, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.catalog.GetItem(c.Request.Context(), id)
		},
	})
}

type itemListQ struct {
	Kind string `form:"kind"` // book | movie | 空=全部
}

func (h *CatalogHandler) MountAdmin(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	// --- 会员 ---
	httpez.Register(ez, httpez.Action[struct{}, []domain.Membership]{
		Method: http.MethodGet,
		Path:   "/memberships",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ domain.Identity, _ *struct{}) ([]domain.Membership, error) {
			return h.catalog.ListMemberships(c.Request.Context())
		},
	})
	httpez.Register(ez, httpez.Action[service.MembershipInput, *domain.Membership]{
		Method: http.MethodPost,
		Path:   "/memberships",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, id domain.Identity, in *service.MembershipInput) (*domain.Membership, error) {
			return h.catalog.AddMembership(c.Request.Context(), id, *in)
		},
	})
	httpez.Register(ez, httpez.Action[struct{}, *domain.Membership]{
		Method: http.MethodGet,
		Path:   "/memberships/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ domain.Identity, _ *struct{}) (*domain.Membership, error) {
			mid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.catalog.GetMembership(c.Request.Context(), mid)
		},
	})
	httpez.Register(ez, httpez.Action[service.MembershipUpdate, *domain.Membership]{
		Method: http.MethodPut,
		Path:   "/memberships/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, id domain.Identity, in *service.MembershipUpdate) (*domain.Membership, error) {
			mid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.catalog.UpdateMembership(c.Request.Context(), id, mid, *in)
		},
	})

	// --- 馆藏 ---
	httpez.Register(ez, httpez.Action[itemListQ, []domain.Item]{
		Method: http.MethodGet,
		Path:   "/items",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, _ domain.Identity, in *itemListQ) ([]domain.Item, error) {
			var f domain.ItemFilter
			switch strings.ToLower(strings.TrimSpace(in.Kind)) {
			case "":
			case "book":
				movie := false
				f.IsMovie = &movie
			case "movie":
				movie := true
				f.IsMovie = &movie
			default:
				return nil, httpez.BadRequest("kind must be book or movie")
			}
			return h.catalog.ListItems(c.Request.Context(), f)
		},
	})
	httpez.Register(ez, httpez.Action[service.ItemInput, *domain.Item]{
		Method: http.MethodPost,
		Path:   "/items",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, id domain.Identity, in *service.ItemInput) (*domain.Item, error) {
			return h.catalog.AddItem(c.Request.Context(), id, *in)
		},
	})
	h.mountGetItem(ez)
	httpez.Register(ez, httpez.Action[service.ItemUpdate, *domain.Item]{
		Method: http.MethodPut,
		Path:   "/items/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, id domain.Identity, in *service.ItemUpdate) (*domain.Item, error) {
			iid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.catalog.UpdateItem(c.Request.Context(), id, iid, *in)
		},
	})

	// --- 账号 ---
	httpez.Register(ez, httpez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) ([]domain.User, error) {
			return h.catalog.ListUsers(c.Request.Context(), id)
		},
	})
	httpez.Register(ez, httpez.Action[service.UserInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, id domain.Identity, in *service.UserInput) (*domain.User, error) {
			return h.catalog.AddUser(c.Request.Context(), id, *in)
		},
	})
	httpez.Register(ez, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, id domain.Identity, _ *struct{}) (*domain.User, error) {
			uid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.catalog.GetUser(c.Request.Context(), id, uid)
		},
	})
	httpez.Register(ez, httpez.Action[service.UserUpdate, *domain.User]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, id domain.Identity, in *service.UserUpdate) (*domain.User, error) {
			uid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.catalog.UpdateUser(c.Request.Context(), id, uid, *in)
		},
	})
}
