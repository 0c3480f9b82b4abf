package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	phoneTag   = "phone"
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

	notBlankTag  = "notblank"
	dateOrderTag = "date_order"
	dateLayout   = "2006-01-02"
)

// ValidationError carries one message per invalid field, keyed by JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+": "+e.Fields[n])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldNames returns the invalid fields in a stable order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validator checks records and auth payloads and renders English messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() *Validator {
	v := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(phoneTag, phoneValidation)
	_ = v.RegisterValidation(notBlankTag, notBlankValidation)
	v.RegisterStructValidation(holidayStructValidation, Holiday{})

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{phoneTag, notBlankTag, dateOrderTag, "datetime"} {
		_ = v.RegisterTranslation(tag, translator, registerFn, translateCustomErrs)
	}

	return &Validator{validate: v, translator: translator}
}

// Struct validates s. It returns a *ValidationError for rule violations and
// a plain error when s cannot be validated at all.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fe.Translate(v.translator)
	}
	return &ValidationError{Fields: fields}
}

// ValidateMobile checks a login mobile number.
func (v *Validator) ValidateMobile(mobile string) error {
	return v.Struct(SendOTPRequest{Mobile: mobile})
}

func translateCustomErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case phoneTag:
		return "enter a valid mobile number (10-15 digits, optional leading +)"
	case notBlankTag:
		return "this field cannot be blank"
	case dateOrderTag:
		return "end date cannot be before start date"
	case "datetime":
		return "use the YYYY-MM-DD format"
	default:
		return fe.Error()
	}
}

func phoneValidation(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// holidayStructValidation rejects a holiday that ends before it starts.
// Malformed dates are left to the datetime rule.
func holidayStructValidation(sl validator.StructLevel) {
	h, ok := sl.Current().Interface().(Holiday)
	if !ok {
		return
	}
	start, err1 := time.Parse(dateLayout, h.StartDate)
	end, err2 := time.Parse(dateLayout, h.EndDate)
	if err1 != nil || err2 != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(h.EndDate, "end_date", "EndDate", dateOrderTag, "")
	}
}
