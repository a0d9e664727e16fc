package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"cms-admin/internal/apperrors"
	"cms-admin/internal/repository"
)

// Validator checks resource input against its struct tags and renders
// the violations as English messages keyed by json field name.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator creates a Validator with the English translations registered
func NewValidator() (*Validator, error) {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := repository.JSONName(fld)
		if name == "-" {
			return ""
		}
		return name
	})

	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register validation translations: %w", err)
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Check validates input. When present is non-nil only violations on those
// json fields are reported.
func (v *Validator) Check(input any, present map[string]any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	var messages []string
	for _, fe := range fieldErrs {
		if present != nil {
			if _, ok := present[fe.Field()]; !ok {
				continue
			}
		}
		messages = append(messages, fe.Translate(v.trans))
	}
	if len(messages) == 0 {
		return nil
	}
	return apperrors.NewValidation(messages...)
}

// decode converts a whitelisted body into the resource's input struct
func decode[I any](body map[string]any) (*I, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}

	var input I
	if err := json.Unmarshal(raw, &input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, apperrors.NewValidation(typeMessage(typeErr))
		}
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	return &input, nil
}

func typeMessage(err *json.UnmarshalTypeError) string {
	field := err.Field
	if field == "" {
		field = "body"
	}

	switch err.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return field + " must be an integer"
	case reflect.Float32, reflect.Float64:
		return field + " must be a number"
	case reflect.Bool:
		return field + " must be a boolean"
	case reflect.String:
		return field + " must be a string"
	default:
		return field + " has an invalid type"
	}
}
