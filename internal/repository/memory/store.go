// Package memory хранит оплаты, доступы и отзывы в памяти процесса.
// Используется в тестах и при STORE=memory.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/google/uuid"
)

type paymentRow struct {
	payment model.Payment
	seq     int64
}

type reviewRow struct {
	review model.Review
	seq    int64
}

type reviewKey struct {
	paymentID uuid.UUID
	courseID  string
}

// Store реализует service.PaymentStore, service.AccessStore и service.ReviewStore
type Store struct {
	mu       sync.RWMutex
	seq      int64
	payments map[uuid.UUID]*paymentRow
	access   map[uuid.UUID]*model.CourseAccess // по payment_id
	reviews  map[uuid.UUID]*reviewRow
	reviewed map[reviewKey]struct{}
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		payments: make(map[uuid.UUID]*paymentRow),
		access:   make(map[uuid.UUID]*model.CourseAccess),
		reviews:  make(map[uuid.UUID]*reviewRow),
		reviewed: make(map[reviewKey]struct{}),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func copyPayment(p *model.Payment) *model.Payment {
	c := *p
	if p.UnlockedAt != nil {
		t := *p.UnlockedAt
		c.UnlockedAt = &t
	}
	return &c
}

func copyAccess(a *model.CourseAccess) *model.CourseAccess {
	c := *a
	return &c
}

func copyReview(r *model.Review) *model.Review {
	c := *r
	return &c
}

// ============ Оплаты ============

func (s *Store) CreatePayment(_ context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	s.payments[payment.ID] = &paymentRow{payment: *copyPayment(payment), seq: s.next()}
	return nil
}

func (s *Store) GetPayment(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.payments[id]
	if !ok {
		return nil, nil
	}
	return copyPayment(&row.payment), nil
}

func (s *Store) ListPayments(_ context.Context, filter model.PaymentFilter) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*paymentRow, 0, len(s.payments))
	for _, row := range s.payments {
		if filter.Status != "" && row.payment.Status != filter.Status {
			continue
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b *paymentRow) int {
		if c := b.payment.CreatedAt.Compare(a.payment.CreatedAt); c != 0 {
			return c
		}
		return int(b.seq - a.seq)
	})

	payments := make([]*model.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, copyPayment(&row.payment))
	}
	return payments, nil
}

func (s *Store) TransitionPaymentStatus(_ context.Context, id uuid.UUID, to model.PaymentStatus, from ...model.PaymentStatus) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.payments[id]
	if !ok {
		return nil, nil
	}

	if len(from) > 0 && !slices.Contains(from, row.payment.Status) {
		return nil, nil
	}

	row.payment.Status = to
	row.payment.UpdatedAt = s.now()
	return copyPayment(&row.payment), nil
}

// ============ Доступы ============

func (s *Store) GrantAccess(_ context.Context, access *model.CourseAccess) (*model.CourseAccess, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.access[access.PaymentID]; ok {
		return copyAccess(existing), false, nil
	}

	stored := copyAccess(access)
	s.access[access.PaymentID] = stored

	if row, ok := s.payments[access.PaymentID]; ok {
		row.payment.Processed = true
		if row.payment.UnlockedAt == nil {
			t := access.AccessDate
			row.payment.UnlockedAt = &t
		}
		row.payment.UpdatedAt = s.now()
	}

	return copyAccess(stored), true, nil
}

func (s *Store) GetAccessByPayment(_ context.Context, paymentID uuid.UUID) (*model.CourseAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	access, ok := s.access[paymentID]
	if !ok {
		return nil, nil
	}
	return copyAccess(access), nil
}

// ============ Отзывы ============

func (s *Store) CreateReview(_ context.Context, review *model.Review) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reviewKey{paymentID: review.PaymentID, courseID: review.CourseID}
	if _, dup := s.reviewed[key]; dup {
		return false, nil
	}

	now := s.now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	s.reviews[review.ID] = &reviewRow{review: *copyReview(review), seq: s.next()}
	s.reviewed[key] = struct{}{}
	return true, nil
}

func (s *Store) sortedReviews(match func(*model.Review) bool) []*reviewRow {
	rows := make([]*reviewRow, 0, len(s.reviews))
	for _, row := range s.reviews {
		if match(&row.review) {
			rows = append(rows, row)
		}
	}

	slices.SortFunc(rows, func(a, b *reviewRow) int {
		if c := b.review.CreatedAt.Compare(a.review.CreatedAt); c != 0 {
			return c
		}
		return int(b.seq - a.seq)
	})
	return rows
}

func (s *Store) ListReviews(_ context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.sortedReviews(func(r *model.Review) bool {
		return (filter.Status == "" || r.Status == filter.Status) &&
			(filter.CourseID == "" || r.CourseID == filter.CourseID)
	})

	reviews := make([]*model.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, copyReview(&row.review))
	}
	return reviews, nil
}

func (s *Store) ListCourseReviews(_ context.Context, courseID string) ([]*model.CourseReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.sortedReviews(func(r *model.Review) bool { return r.CourseID == courseID })

	reviews := make([]*model.CourseReview, 0, len(rows))
	for _, row := range rows {
		cr := &model.CourseReview{Review: *copyReview(&row.review)}
		if p, ok := s.payments[row.review.PaymentID]; ok {
			cr.Payer = &model.ReviewPayer{Name: p.payment.Name, Date: p.payment.CreatedAt}
		}
		reviews = append(reviews, cr)
	}
	return reviews, nil
}

func (s *Store) UpdateReviewStatus(_ context.Context, id uuid.UUID, status model.ReviewStatus) (*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.reviews[id]
	if !ok {
		return nil, nil
	}

	row.review.Status = status
	row.review.UpdatedAt = s.now()
	return copyReview(&row.review), nil
}
