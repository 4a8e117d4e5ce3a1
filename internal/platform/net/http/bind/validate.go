// Package bind decodes request input into typed values and validates them
//
// Bodies go through ParseJSON, query strings through ParseQuery. Both return
// project errors carrying the offending field so the envelope can name it.
package bind

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	perr "adperf/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// Validation is the shared validator and its english translator
type Validation struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	validationOnce sync.Once
	validation     *Validation
)

// Get returns the process wide validator, built on first use
func Get() *Validation {
	validationOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(wireName)
		_ = entrans.RegisterDefaultTranslations(v, trans)

		// bounds read better without the per kind suffix
		for tag, text := range map[string]string{
			"min": "{0} must be at least {1}",
			"max": "{0} must be at most {1}",
		} {
			registerMessage(v, trans, tag, text)
		}
		validation = &Validation{Validator: v, Translator: trans}
	})
	return validation
}

// wireName reports a field by the name clients send: the json key, else the query key
func wireName(f reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ValidationFieldAndMessage returns the first failing field and its english message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

// check runs the validate tags of v, failures become code with the field attached
func check(v any, code perr.ErrorCode) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.New(code, msg), field)
}
