package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError is a single failed rule, keyed by the JSON path of the field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator wraps go-playground/validator with the project's type and naming rules.
type Validator struct{ v *validator.Validate }

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// decimals validate as numbers so gt/gte/lte work on money and percentages
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return &Validator{v: v}
}

// Struct validates s and returns validator.ValidationErrors on failure.
func (cv *Validator) Struct(s any) error { return cv.v.Struct(s) }

// ToFieldErrors maps validator.ValidationErrors to readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := fieldPath(e.Namespace())
		out = append(out, FieldError{Field: field, Message: field + " " + describe(e)})
	}
	return out
}

// FirstMessage returns the first readable message, mirroring how the API reports
// a single error string.
func FirstMessage(err error) string {
	fe := ToFieldErrors(err)
	if len(fe) == 0 {
		return err.Error()
	}
	return fe[0].Message
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid id"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "min":
		return "must have at least " + e.Param() + " item(s)"
	case "oneof":
		return "must be one of " + e.Param()
	default:
		return e.Tag() + " validation failed"
	}
}

// fieldPath drops the root struct name: "CreateApplicationInput.customerInfo.pan" -> "customerInfo.pan".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
