package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/course_payments/internal/model"
)

// QueryService чтение для админки поверх журнала оплат и отзывов, своего состояния нет
type QueryService struct {
	payments *PaymentService
	reviews  *ReviewService
}

func NewQueryService(payments *PaymentService, reviews *ReviewService) *QueryService {
	return &QueryService{payments: payments, reviews: reviews}
}

// Summary количество оплат и отзывов по статусам
type Summary struct {
	Payments map[model.PaymentStatus]int `json:"payments"`
	Reviews  map[model.ReviewStatus]int  `json:"reviews"`
}

// Payments оплаты с фильтром по статусу
func (q *QueryService) Payments(ctx context.Context, status model.PaymentStatus) ([]*model.Payment, error) {
	return q.payments.List(ctx, status)
}

// Reviews отзывы с фильтром по статусу
func (q *QueryService) Reviews(ctx context.Context, status model.ReviewStatus) ([]*model.Review, error) {
	return q.reviews.List(ctx, status)
}

// CourseReviews отзывы одного курса
func (q *QueryService) CourseReviews(ctx context.Context, courseID string) ([]*model.CourseReview, error) {
	return q.reviews.ListByCourse(ctx, courseID)
}

// Summary считает записи по статусам
func (q *QueryService) Summary(ctx context.Context) (*Summary, error) {
	payments, err := q.payments.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	reviews, err := q.reviews.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	summary := &Summary{
		Payments: map[model.PaymentStatus]int{
			model.PaymentStatusPending:  0,
			model.PaymentStatusApproved: 0,
			model.PaymentStatusRejected: 0,
		},
		Reviews: map[model.ReviewStatus]int{
			model.ReviewStatusPending:  0,
			model.ReviewStatusApproved: 0,
			model.ReviewStatusRejected: 0,
		},
	}

	for _, p := range payments {
		summary.Payments[p.Status]++
	}
	for _, r := range reviews {
		summary.Reviews[r.Status]++
	}

	return summary, nil
}
