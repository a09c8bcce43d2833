package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/Freeeeeet/course_payments/internal/events"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator называет поля по json-тегам, чтобы клиент видел свои имена
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// validateInput собирает все отсутствующие поля; остальные нарушения идут отдельным списком
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return invalid(err.Error())
	}

	var absent, bad []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			absent = append(absent, fe.Field())
		} else {
			bad = append(bad, fe.Field())
		}
	}

	if len(absent) > 0 {
		return missing(absent...)
	}
	return invalid("Invalid fields", bad...)
}

// publish отправляет событие; сбой доставки не влияет на результат операции
func publish(ctx context.Context, publisher events.Publisher, logger *zap.Logger, event events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("event", string(event.Type)),
			zap.String("key", event.Key()),
			zap.Error(err),
		)
	}
}

func orNop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.Nop{}
	}
	return p
}
