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

// ReviewOptions настройки приёма отзывов
type ReviewOptions struct {
	// RequireAccess требует открытый доступ к курсу, а не только одобренную оплату
	RequireAccess bool
}

type ReviewService struct {
	payments  PaymentStore
	access    AccessStore
	reviews   ReviewStore
	publisher events.Publisher
	opts      ReviewOptions
	logger    *zap.Logger
}

func NewReviewService(
	payments PaymentStore,
	access AccessStore,
	reviews ReviewStore,
	publisher events.Publisher,
	opts ReviewOptions,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		payments:  payments,
		access:    access,
		reviews:   reviews,
		publisher: orNop(publisher),
		opts:      opts,
		logger:    logger,
	}
}

// SubmitReviewInput данные отзыва; Rating == 0 считается отсутствующим
type SubmitReviewInput struct {
	PaymentID string `json:"paymentId" validate:"required"`
	Rating    int    `json:"rating" validate:"required"`
	Comment   string `json:"text"`
	CourseID  string `json:"courseId" validate:"required"`
}

// Submit принимает отзыв от владельца одобренной оплаты
func (s *ReviewService) Submit(ctx context.Context, in SubmitReviewInput) (*model.Review, error) {
	in.PaymentID = strings.TrimSpace(in.PaymentID)
	in.CourseID = strings.TrimSpace(in.CourseID)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	payment, err := s.approvedPayment(ctx, in.PaymentID)
	if err != nil {
		return nil, err
	}

	if s.opts.RequireAccess {
		access, err := s.access.GetAccessByPayment(ctx, payment.ID)
		if err != nil {
			return nil, unavailable("get access", err)
		}

		if access == nil || !access.AccessGranted || access.CourseID != in.CourseID {
			return nil, fmt.Errorf("no access to course %s: %w", in.CourseID, ErrForbidden)
		}
	}

	if !model.ValidRating(in.Rating) {
		return nil, invalid(fmt.Sprintf("Rating must be between %d and %d", model.MinRating, model.MaxRating), "rating")
	}

	review := &model.Review{
		ID:        uuid.New(),
		PaymentID: payment.ID,
		Name:      payment.Name,
		Email:     payment.Email,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CourseID:  in.CourseID,
		Status:    model.ReviewStatusPending,
	}

	created, err := s.reviews.CreateReview(ctx, review)
	if err != nil {
		return nil, unavailable("create review", err)
	}

	if !created {
		return nil, fmt.Errorf("review for course %s already submitted: %w", in.CourseID, ErrInvalidState)
	}

	s.logger.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("course_id", review.CourseID),
		zap.Int("rating", review.Rating),
	)

	publish(ctx, s.publisher, s.logger, events.Event{Type: events.ReviewSubmitted, Review: review, Payment: payment})

	return review, nil
}

// approvedPayment загружает оплату; неизвестная или неодобренная одинаково отклоняется
func (s *ReviewService) approvedPayment(ctx context.Context, rawID string) (*model.Payment, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("payment not approved: %w", ErrInvalidState)
	}

	payment, err := s.payments.GetPayment(ctx, id)
	if err != nil {
		return nil, unavailable("get payment", err)
	}

	if payment == nil || !payment.IsApproved() {
		return nil, fmt.Errorf("payment not approved: %w", ErrInvalidState)
	}

	return payment, nil
}

// List возвращает отзывы, новые первыми; пустой status = все
func (s *ReviewService) List(ctx context.Context, status model.ReviewStatus) ([]*model.Review, error) {
	reviews, err := s.reviews.ListReviews(ctx, model.ReviewFilter{Status: status})
	if err != nil {
		return nil, unavailable("list reviews", err)
	}

	if reviews == nil {
		reviews = []*model.Review{}
	}

	return reviews, nil
}

// ListByCourse возвращает отзывы курса с именем плательщика и датой оплаты
func (s *ReviewService) ListByCourse(ctx context.Context, courseID string) ([]*model.CourseReview, error) {
	reviews, err := s.reviews.ListCourseReviews(ctx, courseID)
	if err != nil {
		return nil, unavailable("list course reviews", err)
	}

	if reviews == nil {
		reviews = []*model.CourseReview{}
	}

	return reviews, nil
}

// SetStatus меняет статус модерации отзыва
func (s *ReviewService) SetStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*model.Review, error) {
	status, ok := model.ParseReviewStatus(rawStatus)
	if !ok {
		return nil, invalid("Invalid status value", "status")
	}

	review, err := s.reviews.UpdateReviewStatus(ctx, id, status)
	if err != nil {
		return nil, unavailable("update review status", err)
	}

	if review == nil {
		return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
	}

	s.logger.Info("Review moderated",
		zap.String("review_id", id.String()),
		zap.String("status", string(status)),
	)

	publish(ctx, s.publisher, s.logger, events.Event{Type: events.ReviewModerated, Review: review})

	return review, nil
}
