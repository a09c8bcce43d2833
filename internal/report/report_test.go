package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func samplePayments() []*model.Payment {
	unlocked := time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC)
	return []*model.Payment{
		{
			ID: uuid.New(), Name: "Nusrat Jahan", Email: "nusrat@example.com", Phone: "+880",
			PaymentMethod: "bkash", TxnID: "TX1", CourseID: "c1", Amount: 1500, Currency: "BDT",
			Status: model.PaymentStatusApproved, Processed: true, UnlockedAt: &unlocked,
			CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), UpdatedAt: unlocked,
		},
		{
			ID: uuid.New(), Name: "Tanvir", Email: "tanvir@example.com", Phone: "+881",
			PaymentMethod: "nagad", TxnID: "TX2", CourseID: "c2", Amount: 990.5, Currency: "BDT",
			Status: model.PaymentStatusPending, CreatedAt: time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestPaymentsWorkbook(t *testing.T) {
	payments := samplePayments()

	book, err := PaymentsWorkbook(payments)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, book.Write(&buf))
	require.NoError(t, book.Close())

	// Читаем обратно, как это сделает Excel
	read, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer read.Close()

	rows, err := read.GetRows(PaymentsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Payment ID", rows[0][0])
	assert.Equal(t, payments[0].ID.String(), rows[1][0])
	assert.Equal(t, "Nusrat Jahan", rows[1][1])
	assert.Equal(t, "approved", rows[1][9])
	assert.Equal(t, "2025-02-02T09:00:00Z", rows[1][11])
	assert.Equal(t, "pending", rows[2][9])
}

func TestReceipt(t *testing.T) {
	p := samplePayments()[0]
	access := model.NewCourseAccess(p, *p.UnlockedAt)

	pdf, err := Receipt(p, access)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	withoutAccess, err := Receipt(p, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, withoutAccess)
}
