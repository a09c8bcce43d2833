package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Freeeeeet/course_payments/internal/repository/memory"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()

	store := memory.NewStore()
	logger := zap.NewNop()

	payments := service.NewPaymentService(store, nil, service.PaymentOptions{}, logger)
	access := service.NewAccessService(store, store, nil, logger)
	reviews := service.NewReviewService(store, store, store, nil, service.ReviewOptions{RequireAccess: true}, logger)
	queries := service.NewQueryService(payments, reviews)

	return NewRouter(NewHandler(payments, access, reviews, queries, logger), opts)
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		req = httptest.NewRequest(method, path, strings.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func paymentBody(courseID string) map[string]any {
	return map[string]any{
		"name":          "Fatima Begum",
		"email":         "fatima@example.com",
		"phone":         "+8801711111111",
		"paymentMethod": "nagad",
		"txnId":         "NG-777",
		"courseId":      courseID,
	}
}

func submitPayment(t *testing.T, r http.Handler, courseID string) string {
	t.Helper()
	w, body := do(t, r, http.MethodPost, "/api/payments", paymentBody(courseID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body["paymentId"].(string)
}

func setStatus(t *testing.T, r http.Handler, id, status string) {
	t.Helper()
	w, _ := do(t, r, http.MethodPatch, "/api/payments/"+id, map[string]any{"status": status})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHappyPath_PaymentUnlockReview(t *testing.T) {
	r := newTestRouter(t, Options{})

	id := submitPayment(t, r, "c1")

	w, body := do(t, r, http.MethodGet, "/api/payments/status/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "c1", body["courseId"])
	assert.Equal(t, id, body["paymentId"])
	assert.Equal(t, 1500.0, body["amount"])
	assert.Equal(t, true, body["success"])

	w, body = do(t, r, http.MethodPatch, "/api/payments/"+id, map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", body["payment"].(map[string]any)["status"])

	w, body = do(t, r, http.MethodPost, "/api/payments/unlock/"+id, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, body["accessGranted"])
	assert.Equal(t, "c1", body["courseId"])
	assert.NotEmpty(t, body["unlockedAt"])

	// Повторное открытие возвращает тот же доступ
	w, again := do(t, r, http.MethodPost, "/api/courses/unlock/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body["unlockedAt"], again["unlockedAt"])
	assert.Equal(t, body["access"].(map[string]any)["_id"], again["access"].(map[string]any)["_id"])

	w, body = do(t, r, http.MethodGet, "/api/courses/check-access/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["hasAccess"])

	w, body = do(t, r, http.MethodPost, "/api/reviews", map[string]any{
		"paymentId": id,
		"rating":    5,
		"text":      "Excellent",
		"courseId":  "c1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reviewID := body["reviewId"].(string)

	w, body = do(t, r, http.MethodGet, "/api/courses/c1/reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["count"])
	listed := body["reviews"].([]any)[0].(map[string]any)
	assert.Equal(t, reviewID, listed["_id"])
	assert.Equal(t, "Fatima Begum", listed["payer"].(map[string]any)["name"])

	w, body = do(t, r, http.MethodPatch, "/api/reviews/"+reviewID, map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", body["review"].(map[string]any)["status"])

	w, body = do(t, r, http.MethodGet, "/api/admin/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, 1.0, summary["payments"].(map[string]any)["approved"])
	assert.Equal(t, 1.0, summary["reviews"].(map[string]any)["approved"])
}

func TestUnlockPendingPayment(t *testing.T) {
	r := newTestRouter(t, Options{})
	id := submitPayment(t, r, "c1")

	w, body := do(t, r, http.MethodPost, "/api/payments/unlock/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	_, body = do(t, r, http.MethodGet, "/api/courses/check-access/"+id, nil)
	assert.Equal(t, false, body["hasAccess"])
	assert.Nil(t, body["access"])
}

func TestReviewForRejectedPayment(t *testing.T) {
	r := newTestRouter(t, Options{})
	id := submitPayment(t, r, "c1")
	setStatus(t, r, id, "rejected")

	w, _ := do(t, r, http.MethodPost, "/api/reviews", map[string]any{
		"paymentId": id,
		"rating":    5,
		"courseId":  "c1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, body := do(t, r, http.MethodGet, "/api/reviews", nil)
	assert.Equal(t, 0.0, body["count"])
}

func TestReviewWithoutAccessIsForbidden(t *testing.T) {
	r := newTestRouter(t, Options{})
	id := submitPayment(t, r, "c1")
	setStatus(t, r, id, "approved")

	w, _ := do(t, r, http.MethodPost, "/api/reviews", map[string]any{
		"paymentId": id,
		"rating":    4,
		"courseId":  "c1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewRatingAsString(t *testing.T) {
	r := newTestRouter(t, Options{})
	id := submitPayment(t, r, "c1")
	setStatus(t, r, id, "approved")
	w, _ := do(t, r, http.MethodPost, "/api/payments/unlock/"+id, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := do(t, r, http.MethodPost, "/api/reviews", map[string]any{
		"paymentId": id,
		"rating":    "4",
		"courseId":  "c1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 4.0, body["review"].(map[string]any)["rating"])
}

func TestSubmitPayment_MissingFields(t *testing.T) {
	r := newTestRouter(t, Options{})

	w, body := do(t, r, http.MethodPost, "/api/payments", map[string]any{"name": "Only Name"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.ElementsMatch(t,
		[]any{"email", "phone", "paymentMethod", "txnId", "courseId"},
		body["missingFields"],
	)

	w, body = do(t, r, http.MethodPost, "/api/payments", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, body["missingFields"], 6)
}

func TestSubmitPayment_SanitizesInput(t *testing.T) {
	r := newTestRouter(t, Options{})

	in := paymentBody("c1")
	in["name"] = "<script>alert(1)</script>Karim"

	w, body := do(t, r, http.MethodPost, "/api/payments", in)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Karim", body["payment"].(map[string]any)["name"])

	// Спецсимволы без тегов хранятся без изменений
	in = paymentBody("c1")
	in["name"] = "Sean O'Brien"
	in["txnId"] = "TX&42 <b>\"bank\"</b>"

	w, body = do(t, r, http.MethodPost, "/api/payments", in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	payment := body["payment"].(map[string]any)
	assert.Equal(t, "Sean O'Brien", payment["name"])
	assert.Equal(t, `TX&42 "bank"`, payment["txnId"])

	w, body = do(t, r, http.MethodGet, "/api/payments/"+body["paymentId"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TX&42 \"bank\"", body["payment"].(map[string]any)["txnId"])
}

func TestSubmitReview_OutOfRangeRatingIsInvalidNotMissing(t *testing.T) {
	r := newTestRouter(t, Options{})
	id := submitPayment(t, r, "c1")
	setStatus(t, r, id, "approved")
	w, _ := do(t, r, http.MethodPost, "/api/payments/unlock/"+id, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := do(t, r, http.MethodPost, "/api/reviews", map[string]any{
		"paymentId": id,
		"rating":    6,
		"courseId":  "c1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"rating"}, body["invalidFields"])
	assert.NotContains(t, body, "missingFields")

	w, body = do(t, r, http.MethodPost, "/api/reviews", map[string]any{"paymentId": id, "courseId": "c1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"rating"}, body["missingFields"])
	assert.NotContains(t, body, "invalidFields")
}

func TestMalformedJSON(t *testing.T) {
	r := newTestRouter(t, Options{})

	w, body := do(t, r, http.MethodPost, "/api/payments", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Malformed JSON", body["error"])
}

func TestPaymentNotFound(t *testing.T) {
	r := newTestRouter(t, Options{})

	for _, path := range []string{
		"/api/payments/not-a-uuid",
		"/api/payments/status/0b8c2bde-8a38-4c2e-9f0e-3b7f1b0f6a11",
		"/api/admin/payments/0b8c2bde-8a38-4c2e-9f0e-3b7f1b0f6a11",
	} {
		w, body := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Payment not found", body["error"], path)
	}
}

func TestUpdatePaymentStatus_Invalid(t *testing.T) {
	r := newTestRouter(t, Options{})
	id := submitPayment(t, r, "c1")

	w, _ := do(t, r, http.MethodPatch, "/api/admin/payments/"+id, map[string]any{"status": "paid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, body := do(t, r, http.MethodGet, "/api/payments/"+id, nil)
	assert.Equal(t, "pending", body["payment"].(map[string]any)["status"])

	setStatus(t, r, id, "approved")
	w, _ = do(t, r, http.MethodPatch, "/api/payments/"+id, map[string]any{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPayments_Filter(t *testing.T) {
	r := newTestRouter(t, Options{})
	submitPayment(t, r, "c1")
	id := submitPayment(t, r, "c2")
	setStatus(t, r, id, "approved")

	_, body := do(t, r, http.MethodGet, "/api/payments", nil)
	assert.Equal(t, 2.0, body["count"])

	_, body = do(t, r, http.MethodGet, "/api/admin/payments?status=approved", nil)
	assert.Equal(t, 1.0, body["count"])
}

func TestExportAndReceipt(t *testing.T) {
	r := newTestRouter(t, Options{})
	id := submitPayment(t, r, "c1")

	w, _ := do(t, r, http.MethodGet, "/api/payments/"+id+"/receipt", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	setStatus(t, r, id, "approved")

	w, _ = do(t, r, http.MethodGet, "/api/payments/"+id+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w, _ = do(t, r, http.MethodGet, "/api/payments/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	// xlsx это zip-архив
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, Options{})

	w, body := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestPanicIsRecovered(t *testing.T) {
	r := newTestRouter(t, Options{})
	r.GET("/api/boom", func(*gin.Context) { panic("boom") })

	w, body := do(t, r, http.MethodGet, "/api/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestServeFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	r := newTestRouter(t, Options{StaticDir: dir})

	w, _ := do(t, r, http.MethodGet, "/app.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w, _ = do(t, r, http.MethodGet, "/courses/c1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>app</html>", w.Body.String())

	w, body := do(t, r, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestLeadingInt(t *testing.T) {
	assert.Equal(t, 4, leadingInt("4"))
	assert.Equal(t, 4, leadingInt(" 4 stars"))
	assert.Equal(t, -2, leadingInt("-2"))
	assert.Equal(t, 0, leadingInt("abc"))
	assert.Equal(t, 0, leadingInt(""))
}
