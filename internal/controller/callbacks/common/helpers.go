package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// CallbackChatID чат, в котором нажата кнопка; 0, если неизвестен
func CallbackChatID(callback *models.CallbackQuery) int64 {
	if msg := GetMessageFromCallback(callback); msg != nil {
		return msg.Chat.ID
	}
	if callback.Message.InaccessibleMessage != nil {
		return callback.Message.InaccessibleMessage.Chat.ID
	}
	return 0
}

// ParseIDFromCallback извлекает UUID из callback data
// Например: "approve_payment:6f1c..." -> 6f1c...
func ParseIDFromCallback(data string) (uuid.UUID, error) {
	_, raw, ok := strings.Cut(data, ":")
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return id, nil
}

// RefreshPaymentMessage перерисовывает карточку оплаты после действия администратора
func RefreshPaymentMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, p *model.Payment, logger *zap.Logger) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		return
	}

	params := &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      formatting.Payment(p),
	}
	if kb := keyboard.PaymentActions(p); kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.EditMessageText(ctx, params); err != nil {
		logger.Warn("Failed to refresh payment message",
			zap.String("payment_id", p.ID.String()),
			zap.Error(err),
		)
	}
}
