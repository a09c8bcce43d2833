package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Freeeeeet/course_payments/internal/events"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/repository/memory"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) count(t events.Type) int {
	n := 0
	for _, got := range r.types() {
		if got == t {
			n++
		}
	}
	return n
}

type fixture struct {
	store    *memory.Store
	events   *recorder
	payments *service.PaymentService
	access   *service.AccessService
	reviews  *service.ReviewService
	queries  *service.QueryService
}

type fixtureOpts struct {
	payment service.PaymentOptions
	review  service.ReviewOptions
}

func newFixture(t *testing.T, opts ...fixtureOpts) *fixture {
	t.Helper()

	o := fixtureOpts{review: service.ReviewOptions{RequireAccess: true}}
	if len(opts) > 0 {
		o = opts[0]
	}

	store := memory.NewStore()
	rec := &recorder{}
	logger := zap.NewNop()

	f := &fixture{
		store:    store,
		events:   rec,
		payments: service.NewPaymentService(store, rec, o.payment, logger),
		access:   service.NewAccessService(store, store, rec, logger),
		reviews:  service.NewReviewService(store, store, store, rec, o.review, logger),
	}
	f.queries = service.NewQueryService(f.payments, f.reviews)
	return f
}

func validPayment(courseID string) service.SubmitPaymentInput {
	return service.SubmitPaymentInput{
		Name:          "Abdullah Rahman",
		Email:         "abdullah@example.com",
		Phone:         "+8801700000000",
		PaymentMethod: "bkash",
		TxnID:         "TX123",
		CourseID:      courseID,
	}
}

func (f *fixture) submit(t *testing.T, courseID string) *model.Payment {
	t.Helper()
	p, err := f.payments.Submit(context.Background(), validPayment(courseID))
	require.NoError(t, err)
	return p
}

func (f *fixture) approved(t *testing.T, courseID string) *model.Payment {
	t.Helper()
	p := f.submit(t, courseID)
	p, err := f.payments.SetStatus(context.Background(), p.ID, "approved")
	require.NoError(t, err)
	return p
}

func (f *fixture) unlocked(t *testing.T, courseID string) *model.Payment {
	t.Helper()
	p := f.approved(t, courseID)
	res, err := f.access.Unlock(context.Background(), p.ID)
	require.NoError(t, err)
	return res.Payment
}
