package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Field names in messages are the json names.
type echoValidator struct {
	v *validator.Validate
}

// domainRules are the custom tags request schemas may use.
var domainRules = map[string]func(string) bool{
	"career": domain.ValidCareer,
	"skill":  func(s string) bool { return domain.SkillLevel(s).Valid() },
	"role":   func(s string) bool { return domain.Role(s).Valid() },
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	for tag, ok := range domainRules {
		ok := ok
		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return ok(fl.Field().String())
		})
	}
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. All field failures are
// joined into one message.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fieldError(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "please add a " + field
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL with HTTP or HTTPS"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s can not be more than %s characters", field, fe.Param())
	case "gte", "lte":
		return field + " is out of range"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "career":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(domain.Careers, ", "))
	case "skill":
		return field + " must be beginner, intermediate or advanced"
	case "role":
		return field + " must be user, publisher or admin"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
