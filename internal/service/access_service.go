package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/course_payments/internal/events"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccessService struct {
	payments  PaymentStore
	access    AccessStore
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewAccessService(
	payments PaymentStore,
	access AccessStore,
	publisher events.Publisher,
	logger *zap.Logger,
) *AccessService {
	return &AccessService{
		payments:  payments,
		access:    access,
		publisher: orNop(publisher),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// UnlockResult результат открытия курса
type UnlockResult struct {
	Access  *model.CourseAccess
	Payment *model.Payment
	Created bool // false, если доступ был открыт раньше
}

// AccessCheck результат проверки доступа
type AccessCheck struct {
	HasAccess bool                `json:"hasAccess"`
	Access    *model.CourseAccess `json:"access,omitempty"`
}

// Unlock открывает доступ к курсу по одобренной оплате. Повторный вызов
// возвращает тот же доступ и не создаёт второй.
func (s *AccessService) Unlock(ctx context.Context, paymentID uuid.UUID) (*UnlockResult, error) {
	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, unavailable("get payment", err)
	}

	if payment == nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
	}

	if !payment.IsApproved() {
		return nil, fmt.Errorf("payment not approved (status %s): %w", payment.Status, ErrInvalidState)
	}

	access, created, err := s.access.GrantAccess(ctx, model.NewCourseAccess(payment, s.now()))
	if err != nil {
		return nil, unavailable("grant access", err)
	}

	// Перечитываем оплату, чтобы вернуть processed/unlockedAt
	refreshed, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, unavailable("get payment", err)
	}
	if refreshed != nil {
		payment = refreshed
	}

	if !created {
		s.logger.Debug("Course already unlocked",
			zap.String("payment_id", paymentID.String()),
			zap.String("access_id", access.ID.String()),
		)
		return &UnlockResult{Access: access, Payment: payment}, nil
	}

	s.logger.Info("Course unlocked",
		zap.String("payment_id", paymentID.String()),
		zap.String("course_id", access.CourseID),
		zap.String("user_id", access.UserID),
	)

	publish(ctx, s.publisher, s.logger, events.Event{Type: events.CourseUnlocked, Payment: payment, Access: access})

	return &UnlockResult{Access: access, Payment: payment, Created: true}, nil
}

// CheckAccess проверяет доступ по оплате. Отсутствие записи не ошибка.
// Доступ действует, только пока оплата остаётся одобренной.
func (s *AccessService) CheckAccess(ctx context.Context, paymentID uuid.UUID) (*AccessCheck, error) {
	access, err := s.access.GetAccessByPayment(ctx, paymentID)
	if err != nil {
		return nil, unavailable("get access", err)
	}

	if access == nil {
		return &AccessCheck{HasAccess: false}, nil
	}

	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, unavailable("get payment", err)
	}

	hasAccess := access.AccessGranted && payment != nil && payment.IsApproved()

	return &AccessCheck{HasAccess: hasAccess, Access: access}, nil
}
