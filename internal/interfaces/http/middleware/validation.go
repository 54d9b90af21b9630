package middleware

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ikpixels/marketplace/internal/interfaces/http/dto"
)

// mwPhonePattern accepts Malawian mobile numbers in local (0991234567) or
// international (+265991234567 or 265991234567) form. Spaces and dashes
// are stripped before matching.
var mwPhonePattern = regexp.MustCompile(`^(?:\+?265|0)[89]\d{8}$`)

// cardNumberPattern accepts a 12 to 19 digit card number once spaces and
// dashes are stripped.
var cardNumberPattern = regexp.MustCompile(`^\d{12,19}$`)

var digitSeparators = strings.NewReplacer(" ", "", "-", "")

var setupOnce sync.Once

// SetupValidator configures gin's validator: error fields are reported by
// their json (or form) name and the mwphone and cardnumber tags are
// registered.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("mwphone", validateMWPhone)
		_ = v.RegisterValidation("cardnumber", validateCardNumber)
	})
}

func validateMWPhone(fl validator.FieldLevel) bool {
	return IsMWPhone(fl.Field().String())
}

// IsMWPhone reports whether s is a Malawian mobile number
func IsMWPhone(s string) bool {
	return mwPhonePattern.MatchString(digitSeparators.Replace(strings.TrimSpace(s)))
}

func validateCardNumber(fl validator.FieldLevel) bool {
	return IsCardNumber(fl.Field().String())
}

// IsCardNumber reports whether s is a card number as printed on a card,
// digits optionally grouped by spaces or dashes.
func IsCardNumber(s string) bool {
	return cardNumberPattern.MatchString(digitSeparators.Replace(strings.TrimSpace(s)))
}

// ValidationDetails lists the rejected fields of a binding error. It is
// empty when err is not a validation error (malformed JSON, bad form).
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

// validationMessage returns a human-readable validation message
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "mwphone":
		return "Must be a Malawian mobile number, e.g. 0991234567"
	case "cardnumber":
		return "Must be a card number of 12 to 19 digits"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "url":
		return "Invalid URL format"
	case "numeric":
		return "Must be numeric"
	case "eqfield":
		return "Must match " + e.Param()
	default:
		return "Invalid value"
	}
}
