package dialog

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ValidationError is a local, pre-network schema violation. Only the first
// violated rule is reported.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Message returns the text to surface for err.
func Message(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

// Messages maps "field.rule" to the text shown for that violation.
type Messages map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := ParseDecimal(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		d, err := ParseDecimal(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	return v
}

// Validate checks form against its `validate` tags in field order.
func Validate(form any, messages Messages) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	first := fieldErrs[0]
	msg, ok := messages[first.Field()+"."+first.Tag()]
	if !ok {
		msg = "invalid " + first.Field()
	}
	return &ValidationError{Field: first.Field(), Rule: first.Tag(), Message: msg}
}

// CoerceText turns raw input (string, number, nil) into form text.
func CoerceText(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	return cast.ToStringE(v)
}

// ParseDecimal reads a price typed by a user. Blank reads as zero; a comma
// decimal separator is accepted.
func ParseDecimal(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(text, ".") {
		text = strings.Replace(text, ",", ".", 1)
	}
	return decimal.NewFromString(text)
}
