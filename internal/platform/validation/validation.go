package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the process-wide validator. Decimal fields are compared as
// float64 so numeric tags such as gte and lt apply to them.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		if err := v.RegisterValidation("clock", validateClock); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("month", validateMonth); err != nil {
			panic(err)
		}
		instance = v
	})
	return instance
}

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Struct validates s and converts failures into field issues. A nil slice
// means s passed.
func Struct(s any) []Issue {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Field: "", Reason: err.Error()}}
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{Field: fe.Field(), Reason: reason(fe)})
	}
	return issues
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "clock":
		return "must be a time in HH:MM format"
	case "month":
		return "must be a month in YYYY-MM format"
	case "datetime":
		return "must be a valid date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func decimalValue(v reflect.Value) any {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateClock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 5 || value[2] != ':' {
		return false
	}
	hours, minutes := value[:2], value[3:]
	return isDigits(hours) && isDigits(minutes) && hours <= "23" && minutes <= "59"
}

func validateMonth(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 7 || value[4] != '-' {
		return false
	}
	month := value[5:]
	return isDigits(value[:4]) && isDigits(month) && month >= "01" && month <= "12"
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
