package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/gin-gonic/gin"
)

const reviewNotFound = "Review not found"

// looseInt принимает число или строку; нечисловое значение даёт 0 (поле считается пустым)
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = looseInt(int(f))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = looseInt(leadingInt(s))
	return nil
}

// leadingInt читает целое в начале строки: "4 stars" -> 4, "abc" -> 0
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch == '-' || ch == '+') && end == 0 {
			end++
			continue
		}
		if ch < '0' || ch > '9' {
			break
		}
		end++
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

type reviewRequest struct {
	PaymentID string   `json:"paymentId"`
	Rating    looseInt `json:"rating"`
	Text      string   `json:"text"`
	CourseID  string   `json:"courseId"`
}

func (h *Handler) submitReview(c *gin.Context) {
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), service.SubmitReviewInput{
		PaymentID: req.PaymentID,
		Rating:    int(req.Rating),
		Comment:   req.Text,
		CourseID:  req.CourseID,
	})
	if err != nil {
		h.handleError(c, err, reviewNotFound)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"message":  "Review submitted successfully",
		"reviewId": review.ID,
		"review":   review,
	})
}

func (h *Handler) listReviews(c *gin.Context) {
	reviews, err := h.queries.Reviews(c.Request.Context(), model.ReviewStatus(c.Query("status")))
	if err != nil {
		h.handleError(c, err, reviewNotFound)
		return
	}

	respond(c, http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

func (h *Handler) updateReviewStatus(c *gin.Context) {
	id, ok := pathID(c, "id", reviewNotFound)
	if !ok {
		return
	}

	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviews.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err, reviewNotFound)
		return
	}

	respond(c, http.StatusOK, gin.H{"review": review})
}
