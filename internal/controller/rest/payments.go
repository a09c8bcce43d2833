package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/report"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const paymentNotFound = "Payment not found"

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) submitPayment(c *gin.Context) {
	var in service.SubmitPaymentInput
	if !bindJSON(c, &in) {
		return
	}

	payment, err := h.payments.Submit(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"message":   "Payment submitted successfully",
		"paymentId": payment.ID,
		"payment":   payment,
	})
}

func (h *Handler) paymentStatus(c *gin.Context) {
	id, ok := pathID(c, "id", paymentNotFound)
	if !ok {
		return
	}

	view, err := h.payments.GetStatus(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"status":    view.Status,
		"courseId":  view.CourseID,
		"paymentId": view.PaymentID,
		"amount":    view.Amount,
	})
}

func (h *Handler) listPayments(c *gin.Context) {
	payments, err := h.queries.Payments(c.Request.Context(), model.PaymentStatus(c.Query("status")))
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	respond(c, http.StatusOK, gin.H{"count": len(payments), "payments": payments})
}

func (h *Handler) getPayment(c *gin.Context) {
	id, ok := pathID(c, "id", paymentNotFound)
	if !ok {
		return
	}

	payment, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	respond(c, http.StatusOK, gin.H{"payment": payment})
}

func (h *Handler) updatePaymentStatus(c *gin.Context) {
	id, ok := pathID(c, "id", paymentNotFound)
	if !ok {
		return
	}

	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.payments.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Payment %s", payment.Status),
		"payment": payment,
	})
}

func (h *Handler) exportPayments(c *gin.Context) {
	payments, err := h.queries.Payments(c.Request.Context(), model.PaymentStatus(c.Query("status")))
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	book, err := report.PaymentsWorkbook(payments)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}
	defer func() {
		if err := book.Close(); err != nil {
			h.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	filename := fmt.Sprintf("payments-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := book.Write(c.Writer); err != nil {
		h.logger.Error("Failed to write export", zap.Error(err))
	}
}

func (h *Handler) paymentReceipt(c *gin.Context) {
	id, ok := pathID(c, "id", paymentNotFound)
	if !ok {
		return
	}

	payment, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	if !payment.IsApproved() {
		h.handleError(c, fmt.Errorf("receipt for %s payment: %w", payment.Status, service.ErrInvalidState), paymentNotFound)
		return
	}

	check, err := h.access.CheckAccess(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	pdf, err := report.Receipt(payment, check.Access)
	if err != nil {
		h.handleError(c, err, paymentNotFound)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=\"receipt-%s.pdf\"", payment.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
