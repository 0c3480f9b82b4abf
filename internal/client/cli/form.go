package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/schooladmin/internal/client/models"
)

// maxFormAttempts bounds how often invalid fields are asked again.
const maxFormAttempts = 3

var errTooManyAttempts = errors.New("too many invalid attempts, form discarded")

type formField struct {
	index int
	name  string
	label string
}

// formFields lists the struct fields that carry a label tag, in declaration
// order.
func formFields(t reflect.Type) []formField {
	var out []formField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		label := f.Tag.Get("label")
		if label == "" {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" {
			name = f.Name
		}
		out = append(out, formField{index: i, name: name, label: label})
	}
	return out
}

// shortLabel drops a trailing format hint such as " (YYYY-MM-DD)".
func shortLabel(label string) string {
	s, _, _ := strings.Cut(label, " (")
	return s
}

func fieldString(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		if v.Int() == 0 {
			return ""
		}
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float64, reflect.Float32:
		if v.Float() == 0 {
			return ""
		}
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	default:
		return v.String()
	}
}

func setField(v reflect.Value, text string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(text)
	case reflect.Int, reflect.Int64, reflect.Int32:
		if text == "" {
			v.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return errors.New("enter a whole number")
		}
		v.SetInt(n)
	case reflect.Float64, reflect.Float32:
		if text == "" {
			v.SetFloat(0)
			return nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return errors.New("enter a number")
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", v.Kind())
	}
	return nil
}

// fillForm prompts the fields of the struct behind ptr. When only is set,
// just those fields are asked. With keep, an empty answer keeps the current
// value. It returns per-field conversion errors.
func (a *App) fillForm(ptr any, only map[string]bool, keep bool) (map[string]string, error) {
	rv := reflect.ValueOf(ptr).Elem()
	problems := map[string]string{}

	for _, f := range formFields(rv.Type()) {
		if only != nil && !only[f.name] {
			continue
		}
		fv := rv.Field(f.index)

		prompt := f.label
		current := fieldString(fv)
		if keep && current != "" {
			prompt = fmt.Sprintf("%s [%s]", f.label, current)
		}

		text, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return nil, err
		}
		if keep && text == "" {
			continue
		}
		if err := setField(fv, text); err != nil {
			problems[f.name] = err.Error()
		}
	}
	return problems, nil
}

// promptRecord fills v field by field and validates it. Invalid fields are
// asked again while valid answers are kept.
func promptRecord[T models.Record](a *App, v *T, editing bool) error {
	var only map[string]bool
	keep := editing

	for attempt := 1; ; attempt++ {
		problems, err := a.fillForm(v, only, keep)
		if err != nil {
			return err
		}

		if verr := a.validator.Struct(*v); verr != nil {
			var ve *models.ValidationError
			if !errors.As(verr, &ve) {
				return verr
			}
			for name, msg := range ve.Fields {
				if _, ok := problems[name]; !ok {
					problems[name] = msg
				}
			}
		}
		if len(problems) == 0 {
			return nil
		}

		ve := &models.ValidationError{Fields: problems}
		for _, name := range ve.FieldNames() {
			a.printf("  %s: %s\n", name, problems[name])
		}
		if attempt >= maxFormAttempts {
			return errTooManyAttempts
		}

		only = make(map[string]bool, len(problems))
		for name := range problems {
			only[name] = true
		}
		keep = false
	}
}

// printRecord writes every labelled field of v.
func (a *App) printRecord(v models.Record) {
	rv := reflect.ValueOf(v)
	a.printf("%-22s %s\n", "ID:", v.GetID())
	for _, f := range formFields(rv.Type()) {
		a.printf("%-22s %s\n", shortLabel(f.label)+":", fieldString(rv.Field(f.index)))
	}
}
