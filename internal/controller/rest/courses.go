package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) unlockCourse(c *gin.Context) {
	id, ok := pathID(c, "paymentId", paymentNotFound)
	if !ok {
		return
	}

	result, err := h.access.Unlock(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	status, message := http.StatusOK, "Course already unlocked"
	if result.Created {
		status, message = http.StatusCreated, "Course unlocked successfully"
	}

	respond(c, status, gin.H{
		"message":       message,
		"courseId":      result.Access.CourseID,
		"paymentId":     result.Access.PaymentID,
		"unlockedAt":    result.Payment.UnlockedAt,
		"accessGranted": result.Access.AccessGranted,
		"access":        result.Access,
	})
}

func (h *Handler) checkAccess(c *gin.Context) {
	id, ok := pathID(c, "paymentId", paymentNotFound)
	if !ok {
		return
	}

	check, err := h.access.CheckAccess(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	body := gin.H{"hasAccess": check.HasAccess}
	if check.Access != nil {
		body["access"] = check.Access
	}
	respond(c, http.StatusOK, body)
}

func (h *Handler) courseReviews(c *gin.Context) {
	reviews, err := h.queries.CourseReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err, reviewNotFound)
		return
	}

	respond(c, http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

func (h *Handler) summary(c *gin.Context) {
	summary, err := h.queries.Summary(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "")
		return
	}

	respond(c, http.StatusOK, gin.H{"summary": summary})
}
