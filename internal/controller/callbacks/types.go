package callbacks

import (
	"context"

	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	paymentService *service.PaymentService,
	accessService *service.AccessService,
	adminChatID int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{Handler: &callbacktypes.Handler{
		PaymentService: paymentService,
		AccessService:  accessService,
		AdminChatID:    adminChatID,
		Logger:         logger,
	}}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h.Handler)
}
