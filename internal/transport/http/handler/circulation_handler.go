package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-admin/internal/domain"
	"library-admin/internal/service"
	httpez "library-admin/internal/transport/http/ez"
)

// CirculationHandler 借出 / 归还 / 缴费，所有登录用户可用
type CirculationHandler struct {
	circulation *service.CirculationService
	log         *zap.Logger
}

func NewCirculationHandler(circulation *service.CirculationService, l *zap.Logger) *CirculationHandler {
	return &CirculationHandler{circulation: circulation, log: l}
}

type availabilityIn struct {
	Title  string `json:"title" form:"title"`
	Author string `json:"author" form:"author"`
}

type issueWindowOut struct {
	Today         string  `json:"today"`
	MaxReturnDate string  `json:"maxReturnDate"`
	FinePerDay    float64 `json:"finePerDay"`
}

type returnIn struct {
	TransactionID    uint   `json:"transactionId" binding:"required"`
	ActualReturnDate string `json:"actualReturnDate" binding:"required"`
}

type returnOut struct {
	*service.ReturnResult
	// Next 有罚款时指向缴费接口
	Next string `json:"next,omitempty"`
}

type payFineIn struct {
	FinePaid bool   `json:"finePaid"`
	Remarks  string `json:"remarks"`
}

func (h *CirculationHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	httpez.Register(ez, httpez.Action[availabilityIn, []domain.Item]{
		Method: http.MethodPost,
		Path:   "/transactions/check-availability",
		Binder: httpez.BindAuto,
		Handler: func(c *gin.Context, _ domain.Identity, in *availabilityIn) ([]domain.Item, error) {
			return h.circulation.CheckAvailability(c.Request.Context(), in.Title, in.Author)
		},
	})

	// 借书表单的默认日期范围
	httpez.Register(ez, httpez.Action[struct{}, issueWindowOut]{
		Method: http.MethodGet,
		Path:   "/transactions/issue-window",
		Binder: httpez.BindNone,
		Handler: func(_ *gin.Context, _ domain.Identity, _ *struct{}) (issueWindowOut, error) {
			today := domain.DateOf(h.circulation.Now())
			rules := h.circulation.Rules()
			return issueWindowOut{
				Today:         today.Format(domain.DateLayout),
				MaxReturnDate: domain.AddDays(today, rules.MaxLoanDays).Format(domain.DateLayout),
				FinePerDay:    rules.FinePerDay,
			}, nil
		},
	})

	httpez.Register(ez, httpez.Action[service.IssueRequest, *domain.Transaction]{
		Method: http.MethodPost,
		Path:   "/transactions/issue",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ domain.Identity, in *service.IssueRequest) (*domain.Transaction, error) {
			return h.circulation.IssueBook(c.Request.Context(), *in)
		},
	})

	httpez.Register(ez, httpez.Action[returnIn, returnOut]{
		Method: http.MethodPost,
		Path:   "/transactions/return",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ domain.Identity, in *returnIn) (returnOut, error) {
			res, err := h.circulation.ReturnBook(c.Request.Context(), in.TransactionID, in.ActualReturnDate)
			if err != nil {
				return returnOut{}, err
			}
			out := returnOut{ReturnResult: res}
			if res.FineDue {
				out.Next = payFinePath(g.BasePath(), res.Transaction.ID)
			}
			return out, nil
		},
	})

	httpez.Register(ez, httpez.Action[payFineIn, *domain.Transaction]{
		Method: http.MethodPost,
		Path:   "/transactions/:id/pay-fine",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ domain.Identity, in *payFineIn) (*domain.Transaction, error) {
			tid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.circulation.PayFine(c.Request.Context(), tid, in.FinePaid, in.Remarks)
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, *domain.Transaction]{
		Method: http.MethodGet,
		Path:   "/transactions/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ domain.Identity, _ *struct{}) (*domain.Transaction, error) {
			tid, err := httpez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.circulation.GetTransaction(c.Request.Context(), tid)
		},
	})
}

func payFinePath(base string, id uint) string {
	return base + "/transactions/" + strconv.FormatUint(uint64(id), 10) + "/pay-fine"
}
