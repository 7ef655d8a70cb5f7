// Package validation configures the shared request and lesson validator
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	notBlankTag      = "notblank"
	slugTag          = "slug"
	nifTag           = "nif"
	ibanTag          = "iban"
	quizOptionsTag   = "quiz_options"
	quizCorrectTag   = "quiz_correct"
	blockOrderTag    = "block_order"
	blockContentTag  = "block_content"
	customTagsByText = map[string]string{
		notBlankTag:     "this field cannot be blank",
		slugTag:         "must contain only lowercase letters, digits and single hyphens",
		nifTag:          "invalid NIF",
		ibanTag:         "invalid IBAN",
		quizOptionsTag:  fmt.Sprintf("quiz must have between %d and %d options", lesson.MinQuizOptions, lesson.MaxQuizOptions),
		quizCorrectTag:  "quiz must have exactly one correct option",
		blockOrderTag:   "block order must match its position",
		blockContentTag: "block has no content",
	}
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(slugTag, slugValidation)
	_ = Validate.RegisterValidation(nifTag, nifValidation)
	_ = Validate.RegisterValidation(ibanTag, ibanValidation)
	Validate.RegisterStructValidation(lessonStructValidation, lesson.Lesson{})

	registerCustomValidationsTranslations()
}

// registerCustomValidationsTranslations registers error messages for custom tags.
// The default translations are already registered, so a noop register func is passed.
func registerCustomValidationsTranslations() {
	registerFn := func(ut.Translator) error { return nil }
	for tag := range customTagsByText {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	return customTagsByText[fe.Tag()]
}

// Struct validates s
func Struct(s any) error {
	return Validate.Struct(s)
}

// FieldErrors maps each failed field to its english message.
// It returns nil when err does not hold validation errors.
func FieldErrors(err error) map[string]string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil
	}
	fldErrs := make(map[string]string, len(vErrs))
	for _, vErr := range vErrs {
		fldErrs[vErr.Field()] = vErr.Translate(Translator)
	}
	return fldErrs
}

// Custom Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func slugValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return slugPattern.MatchString(str)
	}
	return false
}

func nifValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return ValidNIF(str)
	}
	return false
}

func ibanValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return ValidIBAN(str)
	}
	return false
}

// lessonStructValidation checks the block sequence of a lesson before it is saved
func lessonStructValidation(sl validator.StructLevel) {
	l, ok := sl.Current().Interface().(lesson.Lesson)
	if !ok {
		return
	}

	for i, b := range l.Blocks {
		field := fmt.Sprintf("blocks[%d]", i)
		if b.Content == nil {
			sl.ReportError(b.ID, field, "Blocks", blockContentTag, b.ID)
			continue
		}
		if b.Order != i {
			sl.ReportError(b.Order, field, "Blocks", blockOrderTag, b.ID)
			continue
		}

		q, ok := b.Content.(*lesson.QuizContent)
		if !ok {
			continue
		}
		switch {
		case len(q.Options) < lesson.MinQuizOptions || len(q.Options) > lesson.MaxQuizOptions:
			sl.ReportError(len(q.Options), field, "Blocks", quizOptionsTag, b.ID)
		case q.CorrectCount() != 1:
			sl.ReportError(q.CorrectCount(), field, "Blocks", quizCorrectTag, b.ID)
		}
	}
}
