package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reviewColumns = `id, payment_id, name, email, rating, comment, course_id, status, created_at, updated_at`

type ReviewRepository struct {
	*base.Repository
}

func NewReviewRepository(repo *base.Repository) *ReviewRepository {
	return &ReviewRepository{Repository: repo}
}

func reviewDest(r *model.Review) []any {
	return []any{
		&r.ID,
		&r.PaymentID,
		&r.Name,
		&r.Email,
		&r.Rating,
		&r.Comment,
		&r.CourseID,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

func scanReview(row pgx.Row) (*model.Review, error) {
	var r model.Review
	if err := row.Scan(reviewDest(&r)...); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview создает отзыв; false, если отзыв этой оплаты на курс уже есть
func (r *ReviewRepository) CreateReview(ctx context.Context, review *model.Review) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (id, payment_id, name, email, rating, comment, course_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (payment_id, course_id) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		review.ID,
		review.PaymentID,
		review.Name,
		review.Email,
		review.Rating,
		review.Comment,
		review.CourseID,
		review.Status,
	).Scan(&review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("create review: %w", err)
	}

	return true, nil
}

// ListReviews получает отзывы, новые первыми
func (r *ReviewRepository) ListReviews(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE ($1::text = '' OR status = $1)
		  AND ($2::text = '' OR course_id = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.Pool().Query(ctx, query, string(filter.Status), filter.CourseID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// ListCourseReviews получает отзывы курса вместе с именем плательщика и датой оплаты
func (r *ReviewRepository) ListCourseReviews(ctx context.Context, courseID string) ([]*model.CourseReview, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT r.id, r.payment_id, r.name, r.email, r.rating, r.comment, r.course_id, r.status,
		       r.created_at, r.updated_at, p.name, p.created_at
		FROM reviews r
		LEFT JOIN payments p ON p.id = r.payment_id
		WHERE r.course_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.Pool().Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list course reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.CourseReview
	for rows.Next() {
		var (
			cr        model.CourseReview
			payerName *string
			paidAt    *time.Time
		)
		dest := append(reviewDest(&cr.Review), &payerName, &paidAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan course review: %w", err)
		}
		if payerName != nil && paidAt != nil {
			cr.Payer = &model.ReviewPayer{Name: *payerName, Date: *paidAt}
		}
		reviews = append(reviews, &cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course reviews: %w", err)
	}

	return reviews, nil
}

// UpdateReviewStatus обновляет статус модерации
func (r *ReviewRepository) UpdateReviewStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) (*model.Review, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		UPDATE reviews
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reviewColumns

	review, err := scanReview(r.Pool().QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update review status: %w", err)
	}

	return review, nil
}
