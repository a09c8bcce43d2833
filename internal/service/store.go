package service

import (
	"context"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/google/uuid"
)

// Хранилища возвращают (nil, nil), если запись не найдена.

// PaymentStore хранилище оплат
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListPayments(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, error)
	// TransitionPaymentStatus меняет статус, только если текущий входит в from
	// (пустой from = без условия). Возвращает nil, если ни одна строка не обновлена.
	TransitionPaymentStatus(ctx context.Context, id uuid.UUID, to model.PaymentStatus, from ...model.PaymentStatus) (*model.Payment, error)
}

// AccessStore хранилище доступов к курсам
type AccessStore interface {
	// GrantAccess атомарно находит или создаёт доступ для access.PaymentID и
	// отмечает оплату как processed. created=false, если доступ уже был.
	GrantAccess(ctx context.Context, access *model.CourseAccess) (granted *model.CourseAccess, created bool, err error)
	GetAccessByPayment(ctx context.Context, paymentID uuid.UUID) (*model.CourseAccess, error)
}

// ReviewStore хранилище отзывов
type ReviewStore interface {
	// CreateReview возвращает false, если отзыв этой оплаты на этот курс уже есть
	CreateReview(ctx context.Context, review *model.Review) (bool, error)
	ListReviews(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error)
	ListCourseReviews(ctx context.Context, courseID string) ([]*model.CourseReview, error)
	UpdateReviewStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) (*model.Review, error)
}
