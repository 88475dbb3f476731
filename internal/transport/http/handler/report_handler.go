package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-admin/internal/domain"
	"library-admin/internal/service"
	httpez "library-admin/internal/transport/http/ez"
)

type ReportHandler struct {
	reports *service.ReportService
	log     *zap.Logger
}

func NewReportHandler(reports *service.ReportService, l *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: l}
}

type transactionsOut struct {
	Today string               `json:"today"`
	Items []domain.Transaction `json:"items"`
}

func (h *ReportHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g.Group("/reports"), h.log)

	transactions := func(path string, load func(context.Context) ([]domain.Transaction, error)) {
		httpez.Register(ez, httpez.Action[struct{}, transactionsOut]{
			Method: http.MethodGet,
			Path:   path,
			Binder: httpez.BindNone,
			Handler: func(c *gin.Context, _ domain.Identity, _ *struct{}) (transactionsOut, error) {
				ts, err := load(c.Request.Context())
				if err != nil {
					return transactionsOut{}, err
				}
				return transactionsOut{Today: h.reports.Today().Format(domain.DateLayout), Items: ts}, nil
			},
		})
	}
	items := func(path string, load func(context.Context) ([]domain.Item, error)) {
		httpez.Register(ez, httpez.Action[struct{}, []domain.Item]{
			Method: http.MethodGet,
			Path:   path,
			Binder: httpez.BindNone,
			Handler: func(c *gin.Context, _ domain.Identity, _ *struct{}) ([]domain.Item, error) {
				return load(c.Request.Context())
			},
		})
	}

	transactions("/active-issues", h.reports.ActiveIssues)
	transactions("/overdue", h.reports.Overdue)
	items("/master-books", h.reports.MasterBooks)
	items("/master-movies", h.reports.MasterMovies)
	httpez.Register(ez, httpez.Action[struct{}, []domain.Membership]{
		Method: http.MethodGet,
		Path:   "/master-memberships",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ domain.Identity, _ *struct{}) ([]domain.Membership, error) {
			return h.reports.MasterMemberships(c.Request.Context())
		},
	})
}

func (h *ReportHandler) Priority() int { return 200 }
