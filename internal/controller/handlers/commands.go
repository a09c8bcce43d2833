package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common"
	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if chatID != h.adminChatID {
		// Помогает узнать значение для ADMIN_CHAT_ID
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"👋 Это служебный бот приёма оплат.\n\nID этого чата: %d", chatID,
		))
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Сюда приходят новые оплаты и отзывы.\n\n"+
			"Доступные команды:\n"+
			"/pending - Оплаты, ожидающие проверки\n"+
			"/summary - Сводка по статусам\n"+
			"/help - Справка",
		update.Message.From.FirstName,
	)

	h.sendMessage(ctx, b, chatID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/pending - Оплаты, ожидающие проверки\n" +
		"/summary - Количество оплат и отзывов по статусам\n" +
		"/help - Показать эту справку\n\n" +
		"Под каждой оплатой есть кнопки «Одобрить» и «Отклонить». " +
		"После одобрения появляется кнопка «Открыть курс»."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandlePending показывает оплаты в статусе pending
func (h *Handlers) HandlePending(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	chatID := update.Message.Chat.ID

	payments, err := h.paymentService.List(ctx, model.PaymentStatusPending)
	if err != nil {
		h.logger.Error("Failed to list pending payments", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(payments) == 0 {
		h.sendMessage(ctx, b, chatID, "✅ Нет оплат, ожидающих проверки")
		return
	}

	shown := payments
	if len(shown) > pendingLimit {
		shown = shown[:pendingLimit]
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("⏳ Ожидают проверки: %d", len(payments)))
	for _, p := range shown {
		h.sendPayment(ctx, b, chatID, p)
	}

	if len(payments) > len(shown) {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("… и ещё %d. Решите эти и повторите /pending", len(payments)-len(shown)))
	}
}

// HandleSummary показывает сводку по статусам
func (h *Handlers) HandleSummary(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	chatID := update.Message.Chat.ID

	summary, err := h.queryService.Summary(ctx)
	if err != nil {
		h.logger.Error("Failed to build summary", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.Summary(summary))
}
