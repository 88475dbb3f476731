package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// KeyCode 上下文里记录本次响应的业务码，访问日志和指标读取
const KeyCode = "resp_code"

// Resp 统一响应体，HTTP 状态恒为 200，结果看 Code
type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// New data 为空时输出 {}，不输出 null
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data any) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error customMsg 为空时用 CodeMsgMap 的默认文案
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// Reply 写出响应体并记下业务码
func Reply(c *gin.Context, r Resp) {
	c.Set(KeyCode, r.Code)
	c.JSON(http.StatusOK, r)
}

// Abort 中间件拦截请求时使用
func Abort(c *gin.Context, code int, msg string) {
	c.Set(KeyCode, code)
	c.AbortWithStatusJSON(http.StatusOK, Error(code, msg))
}

// CodeOf 未经 Reply/Abort 的请求（如 /health）返回 CodeOK
func CodeOf(c *gin.Context) int {
	return c.GetInt(KeyCode)
}
