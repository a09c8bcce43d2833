package common

import (
	"errors"

	"github.com/Freeeeeet/course_payments/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNotAdmin      = errors.New("chat is not the admin chat")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotAdmin):
		return "❌ Действие доступно только в админ-чате"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, service.ErrNotFound):
		return "❌ Оплата не найдена"
	case errors.Is(err, service.ErrInvalidState):
		return "⚠️ Действие недоступно для текущего статуса оплаты"
	case errors.Is(err, service.ErrValidation):
		return "❌ Неверные данные"
	case errors.Is(err, service.ErrStoreUnavailable):
		return "❌ База данных недоступна, попробуйте позже"
	default:
		return "❌ Произошла ошибка"
	}
}
