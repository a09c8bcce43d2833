package handlers

import (
	"github.com/Freeeeeet/course_payments/internal/service"
	"go.uber.org/zap"
)

// pendingLimit сколько ожидающих оплат показывать за раз
const pendingLimit = 20

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	paymentService *service.PaymentService
	queryService   *service.QueryService
	adminChatID    int64
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	paymentService *service.PaymentService,
	queryService *service.QueryService,
	adminChatID int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		paymentService: paymentService,
		queryService:   queryService,
		adminChatID:    adminChatID,
		logger:         logger,
	}
}
