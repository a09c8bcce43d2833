package model

import (
	"time"

	"github.com/google/uuid"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Границы оценки
const (
	MinRating = 1
	MaxRating = 5
)

// Review отзыв о курсе от плательщика с открытым доступом
type Review struct {
	ID        uuid.UUID    `json:"_id"`
	PaymentID uuid.UUID    `json:"paymentId"`
	Name      string       `json:"name"`  // копия из оплаты на момент отправки
	Email     string       `json:"email"` // копия из оплаты на момент отправки
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CourseID  string       `json:"courseId"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ParseReviewStatus проверяет строку статуса модерации
func ParseReviewStatus(s string) (ReviewStatus, bool) {
	switch status := ReviewStatus(s); status {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return status, true
	default:
		return "", false
	}
}

// ValidRating checks rating bounds
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// ReviewPayer данные оплаты, подставляемые в отзыв курса
type ReviewPayer struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// CourseReview отзыв вместе с именем плательщика и датой оплаты
type CourseReview struct {
	Review
	Payer *ReviewPayer `json:"payer,omitempty"` // nil если оплата не найдена
}

// ReviewFilter фильтр для списка отзывов
type ReviewFilter struct {
	Status   ReviewStatus // пусто = все
	CourseID string       // пусто = все курсы
}
