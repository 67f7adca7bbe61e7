package validation

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. Custom type registrations must
// happen during init, before the first rule runs.
var v = validator.New()

func init() {
	// strongpwd: at least 6 chars with upper, lower, digit and a special
	// character. Length alone is checked here too so the tag is self-contained.
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		pwd := fl.Field().String()
		if len(pwd) < 6 {
			return false
		}
		var upper, lower, digit, special bool
		for _, r := range pwd {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			default:
				special = true
			}
		}
		return upper && lower && digit && special
	})
}

// Struct returns a Rule that runs the request through its validate tags and
// maps each field error to a violation with a human-readable message.
func Struct[Req any]() Rule[Req] {
	return func(req Req) []Violation {
		err := v.Struct(req)
		if err == nil {
			return nil
		}
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return []Violation{{Message: err.Error()}}
		}
		out := make([]Violation, 0, len(ve))
		for _, fe := range ve {
			out = append(out, Violation{Field: fe.Field(), Message: messageFor(fe)})
		}
		return out
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	case "strongpwd":
		return fmt.Sprintf("%s must be at least 6 characters and contain upper and lower case letters, a digit and a special character", fe.Field())
	default:
		return fmt.Sprintf("%s failed '%s' validation", fe.Field(), fe.Tag())
	}
}
