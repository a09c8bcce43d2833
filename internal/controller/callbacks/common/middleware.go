package common

import (
	"context"

	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithAdmin пропускает callback только из админ-чата
// При отказе отвечает alert и не вызывает handler
func WithAdmin(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(),
) {
	chatID := CallbackChatID(callback)
	if chatID == 0 || chatID != h.AdminChatID {
		h.Logger.Warn("Callback from non-admin chat",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", callback.From.ID),
		)
		AnswerCallbackAlert(ctx, b, callback.ID, ErrorMessage(ErrNotAdmin))
		return
	}

	handler()
}
