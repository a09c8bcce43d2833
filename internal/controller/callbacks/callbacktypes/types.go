package callbacktypes

import (
	"github.com/Freeeeeet/course_payments/internal/service"
	"go.uber.org/zap"
)

// Форматы callback data админ-бота
const (
	ApprovePayment = "approve_payment:" // approve_payment:<uuid>
	RejectPayment  = "reject_payment:"  // reject_payment:<uuid>
	UnlockPayment  = "unlock_payment:"  // unlock_payment:<uuid>
	Noop           = "noop"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	PaymentService *service.PaymentService
	AccessService  *service.AccessService
	AdminChatID    int64
	Logger         *zap.Logger
}
