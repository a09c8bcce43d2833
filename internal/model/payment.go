package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"  // Ожидает решения администратора
	PaymentStatusApproved PaymentStatus = "approved" // Одобрен, можно открывать курс
	PaymentStatusRejected PaymentStatus = "rejected" // Отклонён
)

// Значения по умолчанию для новой оплаты
const (
	DefaultPaymentAmount   = 1500.0
	DefaultPaymentCurrency = "BDT"
)

// Payment представляет заявку на оплату курса
type Payment struct {
	ID            uuid.UUID     `json:"_id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	PaymentMethod string        `json:"paymentMethod"`
	TxnID         string        `json:"txnId"` // Ссылка на транзакцию, не проверяется
	CourseID      string        `json:"courseId"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Status        PaymentStatus `json:"status"`
	Processed     bool          `json:"processed"`
	UnlockedAt    *time.Time    `json:"unlockedAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ParsePaymentStatus проверяет строку статуса
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch status := PaymentStatus(s); status {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return status, true
	default:
		return "", false
	}
}

// IsPending checks if payment is pending
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// IsApproved checks if payment is approved
func (p *Payment) IsApproved() bool {
	return p.Status == PaymentStatusApproved
}

// IsRejected checks if payment is rejected
func (p *Payment) IsRejected() bool {
	return p.Status == PaymentStatusRejected
}

// Subject возвращает идентификатор плательщика: email, либо телефон
func (p *Payment) Subject() string {
	if p.Email != "" {
		return p.Email
	}
	return p.Phone
}

// PaymentFilter фильтр для списка оплат
type PaymentFilter struct {
	Status PaymentStatus // пусто = все
}
