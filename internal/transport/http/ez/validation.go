package ez

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"venue-booking-api/internal/domain"
	resp "venue-booking-api/internal/transport/http/response"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 默认校验器上注册业务规则，错误字段名取 json/form 标签
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("venue_category", oneOfFunc(domain.CategorySports, domain.CategoryEntertainment, domain.CategoryBoth))
		_ = v.RegisterValidation("appt_status", func(fl validator.FieldLevel) bool {
			return domain.AppointmentStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("entity_type", oneOfFunc(domain.EntityVenue, domain.EntityBlog, domain.EntityPartner))
		_ = v.RegisterValidation("contact_status", oneOfFunc(domain.ContactNew, domain.ContactRead, domain.ContactReplied))
		_ = v.RegisterValidation("blog_status", oneOfFunc(domain.BlogDraft, domain.BlogPublished))
	})
}

func oneOfFunc(allowed ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

var customMsgs = map[string]string{
	"venue_category": "must be one of: sports, entertainment, both",
	"appt_status":    "must be one of: pending, confirmed, cancelled, completed",
	"entity_type":    "must be one of: venue, blog, partner",
	"contact_status": "must be one of: new, read, replied",
	"blog_status":    "must be one of: draft, published",
}

func fieldMessage(fe validator.FieldError) string {
	if m, ok := customMsgs[fe.Tag()]; ok {
		return m
	}
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}

// fromBinding 绑定阶段的错误：校验失败、JSON 格式错误、请求体过大
func fromBinding(err error) (int, string, map[string]string, bool) {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		fields := make(map[string]string, len(ves))
		for _, fe := range ves {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return resp.CodeBadRequest, "validation failed", fields, true
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return resp.CodeTooLarge, "request body too large", nil, true
	}
	var se *json.SyntaxError
	if errors.As(err, &se) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return resp.CodeBadRequest, "malformed JSON body", nil, true
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return resp.CodeBadRequest, "validation failed", map[string]string{te.Field: "has the wrong type"}, true
	}
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return resp.CodeBadRequest, "invalid query parameter", nil, true
	}
	return 0, "", nil, false
}
