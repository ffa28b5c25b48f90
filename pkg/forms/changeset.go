// Package forms validates submitted form params.
package forms

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrRequired is recorded for a blank required field.
	ErrRequired = errors.New("is required")

	// ErrFormat is recorded for a field that does not match its pattern.
	ErrFormat = errors.New("has invalid format")
)

// FieldError is a validation failure on one field.
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Err.Error()
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// Changeset holds trimmed form params and the errors found on them, in the
// order the validations ran.
type Changeset struct {
	Params map[string]string
	errors []FieldError
}

// Cast keeps the allowed keys of params, trimming surrounding whitespace.
// Non-string values are formatted with fmt.
func Cast(params map[string]any, allowed ...string) *Changeset {
	cs := &Changeset{Params: make(map[string]string, len(allowed))}
	for _, field := range allowed {
		switch v := params[field].(type) {
		case nil:
			cs.Params[field] = ""
		case string:
			cs.Params[field] = strings.TrimSpace(v)
		default:
			cs.Params[field] = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return cs
}

// GetString returns the trimmed value of field.
func (cs *Changeset) GetString(field string) string {
	return cs.Params[field]
}

// ValidateRequired records ErrRequired for each blank field.
func (cs *Changeset) ValidateRequired(fields ...string) *Changeset {
	for _, field := range fields {
		if cs.Params[field] == "" {
			cs.AddError(field, ErrRequired)
		}
	}
	return cs
}

// ValidateFormat records ErrFormat when a non-blank field does not match re.
func (cs *Changeset) ValidateFormat(field string, re *regexp.Regexp) *Changeset {
	value := cs.Params[field]
	if value == "" {
		return cs // blank values are ValidateRequired's concern
	}
	if !re.MatchString(value) {
		cs.AddError(field, ErrFormat)
	}
	return cs
}

// AddError records err on field.
func (cs *Changeset) AddError(field string, err error) *Changeset {
	cs.errors = append(cs.errors, FieldError{Field: field, Err: err})
	return cs
}

// Valid reports whether no validation failed.
func (cs *Changeset) Valid() bool {
	return len(cs.errors) == 0
}

// HasError reports whether field failed a validation.
func (cs *Changeset) HasError(field string) bool {
	for _, e := range cs.errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Errors returns the recorded failures.
func (cs *Changeset) Errors() []FieldError {
	return cs.errors
}

// Err returns the first failure, or nil.
func (cs *Changeset) Err() error {
	if len(cs.errors) == 0 {
		return nil
	}
	return cs.errors[0]
}
