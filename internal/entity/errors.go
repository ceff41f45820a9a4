package entity

import (
	"errors"
	"fmt"
)

// ErrValidation - общий признак ошибок валидации, проверяется через errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError описывает некорректное поле запроса. Возникает до любого обращения к хранилищам.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var (
	ErrFileRequired   = &ValidationError{Field: "file", Reason: "Please select a file"}
	ErrFileEmpty      = &ValidationError{Field: "file", Reason: "File is empty"}
	ErrFileNotPDF     = &ValidationError{Field: "file", Reason: "Only PDF files are allowed"}
	ErrFileTooLarge   = &ValidationError{Field: "file", Reason: "File size must be less than 50 MB"}
	ErrRequiredFields = &ValidationError{Reason: "Please fill in all required fields"}
)
