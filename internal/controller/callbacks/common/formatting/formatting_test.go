package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500 BDT", FormatAmount(1500, "BDT"))
	assert.Equal(t, "990.50 BDT", FormatAmount(990.5, "BDT"))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "⭐⭐⭐☆☆", Stars(3))
	assert.Equal(t, "⭐⭐⭐⭐⭐", Stars(9))
	assert.Equal(t, "☆☆☆☆☆", Stars(-1))
}

func TestPayment(t *testing.T) {
	unlocked := time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)
	p := &model.Payment{
		ID:            uuid.New(),
		Name:          "Sadia",
		Email:         "sadia@example.com",
		Phone:         "+880",
		PaymentMethod: "bkash",
		TxnID:         "TX9",
		CourseID:      "c1",
		Amount:        1500,
		Currency:      "BDT",
		Status:        model.PaymentStatusApproved,
		CreatedAt:     time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		UnlockedAt:    &unlocked,
	}

	text := Payment(p)
	assert.Contains(t, text, "✅ Оплата "+p.ID.String())
	assert.Contains(t, text, "Курс: c1")
	assert.Contains(t, text, "1500 BDT")
	assert.Contains(t, text, "Статус: Одобрена")
	assert.Contains(t, text, "Создана: 01.01.2025 10:00")
	assert.Contains(t, text, "Курс открыт: 02.01.2025 15:04")
}

func TestReview(t *testing.T) {
	text := Review(&model.Review{CourseID: "c1", Name: "Sadia", Email: "s@example.com", Rating: 4, Comment: "Great", Status: model.ReviewStatusPending})
	assert.Contains(t, text, "⭐⭐⭐⭐☆")
	assert.Contains(t, text, "На модерации")
	assert.Contains(t, text, "Great")
}

func TestSummary(t *testing.T) {
	text := Summary(&service.Summary{
		Payments: map[model.PaymentStatus]int{model.PaymentStatusPending: 3},
		Reviews:  map[model.ReviewStatus]int{model.ReviewStatusApproved: 2},
	})
	assert.Contains(t, text, "Ожидают: 3")
	assert.Contains(t, text, "Опубликованы: 2")
}

func TestStatusDisplay_Unknown(t *testing.T) {
	assert.Equal(t, "❓", GetPaymentStatusDisplay("bogus").Emoji)
	assert.Equal(t, "❓", GetReviewStatusDisplay("bogus").Emoji)
}
