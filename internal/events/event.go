package events

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/course_payments/internal/model"
)

type Type string

const (
	PaymentSubmitted Type = "payment.submitted"
	PaymentApproved  Type = "payment.approved"
	PaymentRejected  Type = "payment.rejected"
	PaymentReopened  Type = "payment.pending"
	CourseUnlocked   Type = "course.unlocked"
	ReviewSubmitted  Type = "review.submitted"
	ReviewModerated  Type = "review.moderated"
)

// PaymentStatusEvent возвращает тип события для нового статуса оплаты
func PaymentStatusEvent(status model.PaymentStatus) Type {
	switch status {
	case model.PaymentStatusApproved:
		return PaymentApproved
	case model.PaymentStatusRejected:
		return PaymentRejected
	default:
		return PaymentReopened
	}
}

// Event доменное событие со снимками затронутых записей
type Event struct {
	Type       Type                `json:"event"`
	OccurredAt time.Time           `json:"ts"`
	Payment    *model.Payment      `json:"payment,omitempty"`
	Access     *model.CourseAccess `json:"access,omitempty"`
	Review     *model.Review       `json:"review,omitempty"`
}

// Key ключ партиционирования: все события одной оплаты идут по порядку
func (e Event) Key() string {
	switch {
	case e.Payment != nil:
		return e.Payment.ID.String()
	case e.Access != nil:
		return e.Access.PaymentID.String()
	case e.Review != nil:
		return e.Review.PaymentID.String()
	default:
		return string(e.Type)
	}
}

// Publisher получатель доменных событий
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop ничего не делает
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Fanout рассылает событие всем получателям, ошибка одного не мешает остальным
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
