// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one field that failed validation.
type FieldError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"-"`
	Message string      `json:"message"`
}

// Error returns the human-readable message.
func (e FieldError) Error() string {
	return e.Message
}

// RequestValidationError collects every failed field of one struct.
type RequestValidationError struct {
	fields []FieldError
}

// Fields returns the failed fields in declaration order.
func (ve *RequestValidationError) Fields() []FieldError {
	return ve.fields
}

// Error joins all field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.fields))
	for i, f := range ve.fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// APIError is the error body returned to HTTP clients.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failure into the VALIDATION_ERROR response shape.
func (ve *RequestValidationError) ToAPIError() *APIError {
	apiErr := &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}

	switch len(ve.fields) {
	case 0:
	case 1:
		f := ve.fields[0]
		apiErr.Message = f.Message
		apiErr.Details = map[string]interface{}{"field": f.Field, "tag": f.Tag}
	default:
		apiErr.Message = ve.Error()
		apiErr.Details = map[string]interface{}{"fields": ve.fields}
	}
	return apiErr
}

// GetValidator returns the shared validator. Field names in errors are taken
// from json tags so messages match what API clients send.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// Registration only fails on an empty tag or nil func.
		_ = validate.RegisterValidation("record_id", validateRecordID)
		_ = validate.RegisterValidation("log_level", validateLogLevel)
	})
	return validate
}

// ValidateStruct validates s. It returns nil when every rule passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = FieldError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translate(fe),
		}
	}
	return &RequestValidationError{fields: fields}
}

// Var validates a single value against tag.
func Var(value interface{}, tag string) error {
	if err := GetValidator().Var(value, tag); err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	return nil
}

// validateRecordID accepts identifiers of up to 256 printable characters
// without whitespace.
func validateRecordID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" || len(id) > 256 {
		return false
	}
	for _, r := range id {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled", "off":
		return true
	}
	return false
}

// fieldPath drops the top-level struct name from the namespace, so nested
// fields read as "records[2].id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

var simpleMessages = map[string]string{
	"required":  "%s is required",
	"record_id": "%s must be 1-256 printable characters without whitespace",
	"log_level": "%s must be a valid log level",
	"url":       "%s must be a valid URL",
	"hostname":  "%s must be a valid hostname",
	"dir":       "%s must be an existing directory",
	"unique":    "%s must not contain duplicates",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

// translate converts a validator.FieldError to a readable message.
func translate(fe validator.FieldError) string {
	field := fieldPath(fe)

	if tmpl, ok := simpleMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}

	countable := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map
	unit := ""
	if countable {
		unit = " items"
		if fe.Kind() == reflect.String {
			unit = " characters"
		}
	}

	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, fe.Param(), unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
