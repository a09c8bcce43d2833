package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/course_payments/internal/events"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentOptions настройки журнала оплат
type PaymentOptions struct {
	// AllowRedecide разрешает менять статус уже решённой оплаты
	AllowRedecide bool
}

type PaymentService struct {
	payments  PaymentStore
	publisher events.Publisher
	opts      PaymentOptions
	logger    *zap.Logger
}

func NewPaymentService(
	payments PaymentStore,
	publisher events.Publisher,
	opts PaymentOptions,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		publisher: orNop(publisher),
		opts:      opts,
		logger:    logger,
	}
}

// SubmitPaymentInput данные новой оплаты
type SubmitPaymentInput struct {
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required"`
	Phone         string   `json:"phone" validate:"required"`
	PaymentMethod string   `json:"paymentMethod" validate:"required"`
	TxnID         string   `json:"txnId" validate:"required"`
	CourseID      string   `json:"courseId" validate:"required"`
	Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
	Currency      string   `json:"currency"`
}

func (in *SubmitPaymentInput) trim() {
	for _, f := range []*string{&in.Name, &in.Email, &in.Phone, &in.PaymentMethod, &in.TxnID, &in.CourseID, &in.Currency} {
		*f = strings.TrimSpace(*f)
	}
}

// PaymentStatusView ответ на проверку статуса оплаты
type PaymentStatusView struct {
	Status    model.PaymentStatus `json:"status"`
	CourseID  string              `json:"courseId"`
	PaymentID uuid.UUID           `json:"paymentId"`
	Amount    float64             `json:"amount"`
}

// Submit сохраняет новую оплату в статусе pending
func (s *PaymentService) Submit(ctx context.Context, in SubmitPaymentInput) (*model.Payment, error) {
	in.trim()
	if err := validateInput(in); err != nil {
		return nil, err
	}

	payment := &model.Payment{
		ID:            uuid.New(),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		PaymentMethod: in.PaymentMethod,
		TxnID:         in.TxnID,
		CourseID:      in.CourseID,
		Amount:        model.DefaultPaymentAmount,
		Currency:      model.DefaultPaymentCurrency,
		Status:        model.PaymentStatusPending,
	}
	if in.Amount != nil {
		payment.Amount = *in.Amount
	}
	if in.Currency != "" {
		payment.Currency = in.Currency
	}

	if err := s.payments.CreatePayment(ctx, payment); err != nil {
		return nil, unavailable("create payment", err)
	}

	s.logger.Info("Payment submitted",
		zap.String("payment_id", payment.ID.String()),
		zap.String("course_id", payment.CourseID),
		zap.String("method", payment.PaymentMethod),
		zap.Float64("amount", payment.Amount),
	)

	publish(ctx, s.publisher, s.logger, events.Event{Type: events.PaymentSubmitted, Payment: payment})

	return payment, nil
}

// Get получает оплату по ID
func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	payment, err := s.payments.GetPayment(ctx, id)
	if err != nil {
		return nil, unavailable("get payment", err)
	}

	if payment == nil {
		return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
	}

	return payment, nil
}

// GetStatus возвращает краткий статус оплаты
func (s *PaymentService) GetStatus(ctx context.Context, id uuid.UUID) (*PaymentStatusView, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PaymentStatusView{
		Status:    payment.Status,
		CourseID:  payment.CourseID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
	}, nil
}

// List возвращает оплаты, новые первыми; пустой status = все
func (s *PaymentService) List(ctx context.Context, status model.PaymentStatus) ([]*model.Payment, error) {
	payments, err := s.payments.ListPayments(ctx, model.PaymentFilter{Status: status})
	if err != nil {
		return nil, unavailable("list payments", err)
	}

	if payments == nil {
		payments = []*model.Payment{}
	}

	return payments, nil
}

// SetStatus меняет статус оплаты (администратор)
func (s *PaymentService) SetStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*model.Payment, error) {
	status, ok := model.ParsePaymentStatus(rawStatus)
	if !ok {
		return nil, invalid("Invalid status value", "status")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Повторная установка того же статуса ничего не меняет
	if current.Status == status {
		return current, nil
	}

	if !current.IsPending() && !s.opts.AllowRedecide {
		return nil, fmt.Errorf("payment already %s: %w", current.Status, ErrInvalidState)
	}

	// Обновляем только если статус не изменился с момента чтения
	updated, err := s.payments.TransitionPaymentStatus(ctx, id, status, current.Status)
	if err != nil {
		return nil, unavailable("update payment status", err)
	}

	if updated == nil {
		return nil, fmt.Errorf("payment status changed concurrently: %w", ErrInvalidState)
	}

	s.logger.Info("Payment status updated",
		zap.String("payment_id", id.String()),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)

	publish(ctx, s.publisher, s.logger, events.Event{Type: events.PaymentStatusEvent(status), Payment: updated})

	return updated, nil
}
