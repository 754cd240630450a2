package model

import (
	"strings"

	"github.com/pkg/errors"
)

//ErrNotFound is wrapped by stores when an id has no live row
var ErrNotFound = errors.New("entity not found")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

//ValidationError is returned for input that must be rejected before anything is persisted
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
