package response

import "github.com/gin-gonic/gin"

type Resp struct {
	Code   int               `json:"code"`
	Msg    string            `json:"msg"`
	Data   interface{}       `json:"data"`
	Errors map[string]string `json:"errors,omitempty"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// FieldErrors 校验失败，附带字段级提示
func FieldErrors(msg string, fields map[string]string) Resp {
	r := Error(CodeBadRequest, msg)
	r.Errors = fields
	return r
}

// Abort 以业务码对应的 HTTP 状态中止请求
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(HTTPStatus(code), Error(code, msg))
}
