package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	if data == callbacktypes.Noop {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	common.WithAdmin(ctx, b, callback, h, func() {
		switch {
		case strings.HasPrefix(data, callbacktypes.ApprovePayment):
			HandleApprovePayment(ctx, b, callback, h)
		case strings.HasPrefix(data, callbacktypes.RejectPayment):
			HandleRejectPayment(ctx, b, callback, h)
		case strings.HasPrefix(data, callbacktypes.UnlockPayment):
			HandleUnlockPayment(ctx, b, callback, h)
		default:
			h.Logger.Warn("Unknown callback", zap.String("data", data))
			common.AnswerCallback(ctx, b, callback.ID, "❓ Неизвестная команда")
		}
	})
}
