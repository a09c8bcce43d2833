package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/course_payments/internal/events"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const notifyTimeout = 10 * time.Second

// MessageSender отправляет сообщения в Telegram; *bot.Bot подходит
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// AdminNotifier сообщает в админ-чат о новых оплатах и отзывах
type AdminNotifier struct {
	sender MessageSender
	chatID int64
	logger *zap.Logger
}

func NewAdminNotifier(sender MessageSender, chatID int64, logger *zap.Logger) *AdminNotifier {
	return &AdminNotifier{sender: sender, chatID: chatID, logger: logger}
}

// Publish отправляет сообщение в фоне, запрос не ждёт Telegram
func (n *AdminNotifier) Publish(_ context.Context, event events.Event) error {
	params := Message(n.chatID, event)
	if params == nil {
		return nil
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if _, err := n.sender.SendMessage(ctx, params); err != nil {
			n.logger.Error("Failed to notify admin chat",
				zap.String("event", string(event.Type)),
				zap.String("key", event.Key()),
				zap.Error(err),
			)
		}
	}()

	return nil
}

// Message сообщение админ-чату для события; nil, если событие не интересно
func Message(chatID int64, event events.Event) *bot.SendMessageParams {
	switch {
	case event.Type == events.PaymentSubmitted && event.Payment != nil:
		params := &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🆕 Новая оплата\n\n" + formatting.Payment(event.Payment),
		}
		if kb := keyboard.PaymentActions(event.Payment); kb != nil {
			params.ReplyMarkup = kb
		}
		return params
	case event.Type == events.ReviewSubmitted && event.Review != nil:
		return &bot.SendMessageParams{
			ChatID: chatID,
			Text:   formatting.Review(event.Review),
		}
	default:
		return nil
	}
}
