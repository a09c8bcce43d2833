package handlers

import (
	"context"

	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// sendPayment отправляет карточку оплаты с кнопками действий
func (h *Handlers) sendPayment(ctx context.Context, b *bot.Bot, chatID int64, p *model.Payment) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   formatting.Payment(p),
	}
	if kb := keyboard.PaymentActions(p); kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send payment card",
			zap.Int64("chat_id", chatID),
			zap.String("payment_id", p.ID.String()),
			zap.Error(err),
		)
	}
}
