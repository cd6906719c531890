// Package validate wraps go-playground/validator with English messages keyed
// by the json or yaml field name.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	setupOnce sync.Once
	engine    *govalidator.Validate
	trans     ut.Translator
)

func setup() {
	setupOnce.Do(func() {
		engine = govalidator.New(govalidator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(tagName)
		locale := en.New()
		uni := ut.New(locale, locale)
		var found bool
		trans, found = uni.GetTranslator("en")
		if !found {
			panic("validate: english translator not registered")
		}
		if err := en_translations.RegisterDefaultTranslations(engine, trans); err != nil {
			panic(fmt.Sprintf("validate: register english translations: %v", err))
		}
	})
}

// tagName prefers the json name, then the yaml name, then the Go name.
func tagName(fld reflect.StructField) string {
	for _, key := range []string{"json", "yaml"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Struct validates s and returns a *ValidationError listing every failed field.
func Struct(s any) error {
	setup()
	if err := engine.Struct(s); err != nil {
		return toValidationError(err)
	}
	return nil
}

// Var validates a single value against tag, reporting failures under field.
func Var(field string, value any, tag string) error {
	setup()
	if err := engine.Var(value, tag); err != nil {
		var ve govalidator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			msg := strings.TrimSpace(strings.TrimPrefix(ve[0].Translate(trans), ve[0].Field()))
			return &ValidationError{Issues: []Issue{{Field: field, Message: msg}}}
		}
		return err
	}
	return nil
}

// TranslateErrors maps field names to human-readable messages. Errors that
// are not validation errors are reported under "detail".
func TranslateErrors(err error) map[string]string {
	setup()
	fields := make(map[string]string)
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe)] = fe.Translate(trans)
		}
		return fields
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		for _, issue := range verr.Issues {
			fields[issue.Field] = issue.Message
		}
		return fields
	}
	fields["detail"] = err.Error()
	return fields
}

func toValidationError(err error) error {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	issues := make([]Issue, 0, len(ve))
	for _, fe := range ve {
		issues = append(issues, Issue{Field: fieldPath(fe), Message: fe.Translate(trans)})
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return &ValidationError{Issues: issues}
}

// fieldPath drops the root struct name from the namespace: Config.log.level -> log.level.
func fieldPath(fe govalidator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}
