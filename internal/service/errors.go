package service

import (
	"errors"
	"fmt"
	"strings"
)

// Классы ошибок сервисного слоя, HTTP и бот сопоставляют их через errors.Is
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError перечисляет все невалидные поля, а не только первое
type ValidationError struct {
	Message string
	Fields  []string
	// Missing: поля отсутствуют, а не заданы неверно
	Missing bool
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// Is позволяет errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(message string, fields ...string) error {
	return &ValidationError{Message: message, Fields: fields}
}

func missing(fields ...string) error {
	return &ValidationError{Message: "Missing required fields", Fields: fields, Missing: true}
}

// unavailable помечает ошибку хранилища как временную
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
