package service_test

import (
	"context"
	"testing"

	"github.com/Freeeeeet/course_payments/internal/events"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewInput(p *model.Payment, rating int) service.SubmitReviewInput {
	return service.SubmitReviewInput{
		PaymentID: p.ID.String(),
		Rating:    rating,
		Comment:   "Very helpful course",
		CourseID:  p.CourseID,
	}
}

func TestReviewSubmit_FromUnlockedPayment(t *testing.T) {
	f := newFixture(t)
	p := f.unlocked(t, "c1")

	r, err := f.reviews.Submit(context.Background(), reviewInput(p, 5))
	require.NoError(t, err)

	assert.Equal(t, p.ID, r.PaymentID)
	assert.Equal(t, p.Name, r.Name)
	assert.Equal(t, p.Email, r.Email)
	assert.Equal(t, 5, r.Rating)
	assert.Equal(t, "Very helpful course", r.Comment)
	assert.Equal(t, model.ReviewStatusPending, r.Status)
	assert.Equal(t, 1, f.events.count(events.ReviewSubmitted))

	listed, err := f.reviews.ListByCourse(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, r.ID, listed[0].ID)
	require.NotNil(t, listed[0].Payer)
	assert.Equal(t, p.Name, listed[0].Payer.Name)
}

func TestReviewSubmit_RatingBoundaries(t *testing.T) {
	tests := []struct {
		rating int
		ok     bool
	}{
		{rating: 1, ok: true},
		{rating: 5, ok: true},
		{rating: 6},
		{rating: -1},
	}

	for _, tt := range tests {
		f := newFixture(t)
		p := f.unlocked(t, "c1")

		_, err := f.reviews.Submit(context.Background(), reviewInput(p, tt.rating))
		if tt.ok {
			assert.NoError(t, err, "rating %d", tt.rating)
			continue
		}

		var verr *service.ValidationError
		if assert.ErrorAs(t, err, &verr, "rating %d", tt.rating) {
			assert.Equal(t, []string{"rating"}, verr.Fields)
			assert.False(t, verr.Missing)
		}
	}
}

func TestReviewSubmit_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.reviews.Submit(context.Background(), service.SubmitReviewInput{})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"paymentId", "rating", "courseId"}, verr.Fields)
	assert.True(t, verr.Missing)
}

func TestReviewSubmit_RequiresApprovedPayment(t *testing.T) {
	f := newFixture(t)

	pending := f.submit(t, "c1")
	rejected := f.submit(t, "c1")
	_, err := f.payments.SetStatus(context.Background(), rejected.ID, "rejected")
	require.NoError(t, err)

	for name, in := range map[string]service.SubmitReviewInput{
		"pending":   reviewInput(pending, 5),
		"rejected":  reviewInput(rejected, 5),
		"unknown":   {PaymentID: uuid.NewString(), Rating: 5, CourseID: "c1"},
		"malformed": {PaymentID: "not-a-uuid", Rating: 5, CourseID: "c1"},
	} {
		_, err := f.reviews.Submit(context.Background(), in)
		assert.ErrorIs(t, err, service.ErrInvalidState, name)
	}

	all, err := f.reviews.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReviewSubmit_StrictModeNeedsAccessForSameCourse(t *testing.T) {
	f := newFixture(t)

	approvedOnly := f.approved(t, "c1")
	_, err := f.reviews.Submit(context.Background(), reviewInput(approvedOnly, 4))
	assert.ErrorIs(t, err, service.ErrForbidden)

	unlocked := f.unlocked(t, "c1")
	in := reviewInput(unlocked, 4)
	in.CourseID = "c2"
	_, err = f.reviews.Submit(context.Background(), in)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestReviewSubmit_RelaxedModeNeedsOnlyApproval(t *testing.T) {
	f := newFixture(t, fixtureOpts{review: service.ReviewOptions{RequireAccess: false}})
	p := f.approved(t, "c1")

	_, err := f.reviews.Submit(context.Background(), reviewInput(p, 4))
	assert.NoError(t, err)
}

func TestReviewSubmit_OncePerCourse(t *testing.T) {
	f := newFixture(t)
	p := f.unlocked(t, "c1")

	_, err := f.reviews.Submit(context.Background(), reviewInput(p, 5))
	require.NoError(t, err)

	_, err = f.reviews.Submit(context.Background(), reviewInput(p, 3))
	assert.ErrorIs(t, err, service.ErrInvalidState)

	all, err := f.reviews.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReviewSetStatus(t *testing.T) {
	f := newFixture(t)
	p := f.unlocked(t, "c1")
	r, err := f.reviews.Submit(context.Background(), reviewInput(p, 5))
	require.NoError(t, err)

	_, err = f.reviews.SetStatus(context.Background(), r.ID, "hidden")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.reviews.SetStatus(context.Background(), uuid.New(), "approved")
	assert.ErrorIs(t, err, service.ErrNotFound)

	moderated, err := f.reviews.SetStatus(context.Background(), r.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, model.ReviewStatusApproved, moderated.Status)
	assert.Equal(t, 1, f.events.count(events.ReviewModerated))

	approved, err := f.reviews.List(context.Background(), model.ReviewStatusApproved)
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	pending, err := f.reviews.List(context.Background(), model.ReviewStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
