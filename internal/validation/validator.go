// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

// Package validation wraps go-playground/validator v10 with a shared
// singleton and readable error messages.
//
// Field names in messages are taken from the koanf struct tag, so a failure
// on Config.Recommend.TopN reads "top_n must be at least 1" rather than the
// Go field name:
//
//	type DataConfig struct {
//	    ReviewsPath string `koanf:"reviews_path" validate:"required"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid configuration: %w", err)
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Namespace string
	Field     string
	Tag       string
	Param     string
	Value     interface{}
	message   string
}

// Error returns a human-readable error message.
func (e *FieldError) Error() string {
	return e.message
}

// Errors is the collection of field errors returned by ValidateStruct.
type Errors []FieldError

// Error joins the individual messages.
func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve))
	for i := range ve {
		messages[i] = ve[i].Error()
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(koanfTagName)
	})
	return validate
}

// koanfTagName reports the koanf key for a struct field, falling back to the
// Go field name.
func koanfTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// ValidateStruct validates s with the singleton validator. It returns nil or
// an Errors value.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return Errors{{Field: "unknown", Tag: "unknown", message: err.Error()}}
	}

	out := make(Errors, len(validationErrs))
	for i, fe := range validationErrs {
		out[i] = FieldError{
			Namespace: trimRoot(fe.Namespace()),
			Field:     fe.Field(),
			Tag:       fe.Tag(),
			Param:     fe.Param(),
			Value:     fe.Value(),
			message:   translateError(fe),
		}
	}
	return out
}

// trimRoot drops the top-level struct name from a namespace such as
// "Config.recommend.top_n".
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"url":      "%s must be a valid URL",
	"file":     "%s must be an existing file",
}

var errorMessageWithParam = map[string]string{
	"oneof":      "%s must be one of: %s",
	"gte":        "%s must be greater than or equal to %s",
	"lte":        "%s must be less than or equal to %s",
	"gt":         "%s must be greater than %s",
	"lt":         "%s must be less than %s",
	"startswith": "%s must start with %s",
}

func translateError(fe validator.FieldError) string {
	field := trimRoot(fe.Namespace())
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
