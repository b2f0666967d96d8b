package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "venue-booking-api/internal/transport/http/middleware"
	resp "venue-booking-api/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AuthMode 守卫模式
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthOptional
	AuthRequired
)

// 统一错误对象（配合 resp.Error(int, msg)）
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

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Unavailable(msg string, err error) error {
	return &AErr{Code: resp.CodeUnavailable, Msg: msg, Err: err}
}
func BadGateway(msg string, err error) error { return &AErr{Code: resp.CodeBadGateway, Msg: msg, Err: err} }
func Internal(msg string, err error) error   { return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err} }

// EZ 路由分组 + 守卫 + 日志
type EZ struct {
	g     *gin.RouterGroup
	guard *mdw.Guard
	log   *zap.Logger
}

func New(g *gin.RouterGroup, guard *mdw.Guard, l *zap.Logger) EZ {
	RegisterValidators()
	return EZ{g: g, guard: guard, log: l}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "DELETE"
	Path    string   // 例："/auth/login"、"/appointments/:id/status"
	Binder  Binder   // 绑定方式
	Auth    AuthMode // 守卫模式
	Roles   []string // 限定角色（隐含 AuthRequired）
	Status  int      // 成功状态码，默认 200
	Extra   []gin.HandlerFunc
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	chain := make([]gin.HandlerFunc, 0, 4)
	mode := a.Auth
	if len(a.Roles) > 0 {
		mode = AuthRequired
	}
	switch mode {
	case AuthRequired:
		chain = append(chain, e.guard.Required())
	case AuthOptional:
		chain = append(chain, e.guard.Optional())
	}
	if len(a.Roles) > 0 {
		chain = append(chain, e.guard.RequireRole(a.Roles...))
	}
	chain = append(chain, a.Extra...)

	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			WriteError(c, e.log, bindErr)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			WriteError(c, e.log, err)
			return
		}
		c.JSON(status, resp.OK(out))
	}
	chain = append(chain, h)

	e.g.Handle(strings.ToUpper(a.Method), a.Path, chain...)
}

// WriteError 统一错误映射；5xx 记录日志，客户端只看到通用提示
func WriteError(c *gin.Context, l *zap.Logger, err error) {
	code, msg, fields := classify(err)
	if code >= 500 {
		l.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("code", code),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
	r := resp.Error(code, msg)
	if len(fields) > 0 {
		r.Errors = fields
	}
	c.AbortWithStatusJSON(resp.HTTPStatus(code), r)
}

func classify(err error) (int, string, map[string]string) {
	var ae *AErr
	if errors.As(err, &ae) {
		msg := ae.Msg
		if ae.Code >= 500 && ae.Code != resp.CodeBadGateway && ae.Code != resp.CodeUnavailable {
			msg = "internal error"
		}
		return ae.Code, msg, nil
	}
	if code, msg, fields, ok := fromDomain(err); ok {
		return code, msg, fields
	}
	if code, msg, fields, ok := fromBinding(err); ok {
		return code, msg, fields
	}
	return resp.CodeServerError, "internal error", nil
}
