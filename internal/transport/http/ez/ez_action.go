package ez

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-admin/internal/domain"
	mdw "library-admin/internal/transport/http/middleware"
	resp "library-admin/internal/transport/http/response"
)

// EZ 在一个路由分组上一行注册动作接口
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, log: l} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindAuto  Binder = "auto"  // 按 Content-Type 选择 JSON / 表单
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT"
	Path    string // 例："/transactions/:id/pay-fine"
	Binder  Binder
	Public  bool // 不要求调用者身份（仅登录接口）
	Handler func(c *gin.Context, id domain.Identity, in *I) (O, error)
}

// Register 在当前 EZ 下注册动作接口
func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 身份（由 BasicAuth 中间件放入上下文）
		id, ok := mdw.IdentityFrom(c)
		if !ok && !a.Public {
			mdw.AbortUnauthorized(c, "unauthorized")
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindAuto:
			bindErr = c.ShouldBind(&in)
		}
		if bindErr != nil {
			resp.Reply(c, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, id, &in)
		if err != nil {
			code, msg := e.mapError(c, err)
			if code == resp.CodeUnauthorized {
				mdw.AbortUnauthorized(c, msg)
				return
			}
			resp.Reply(c, resp.Error(code, msg))
			return
		}
		resp.Reply(c, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func (e EZ) mapError(c *gin.Context, err error) (int, string) {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		if ae.Code >= resp.CodeServerError {
			e.logInternal(c, err)
		}
		return ae.Code, ae.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return resp.CodeUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return resp.CodeForbidden, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return resp.CodeNotFound, err.Error()
	case errors.Is(err, domain.ErrNotAvailable), errors.Is(err, domain.ErrConflict):
		return resp.CodeConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidDate):
		return resp.CodeUnprocessable, err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return resp.CodeBadRequest, err.Error()
	default:
		e.logInternal(c, err)
		return resp.CodeServerError, "internal error"
	}
}

func (e EZ) logInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	if e.log != nil {
		e.log.Error("action failed",
			zap.String("path", c.FullPath()),
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.Error(err),
		)
	}
}

// ParamID 解析路径里的正整数主键
func ParamID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, BadRequest(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return uint(v), nil
}
