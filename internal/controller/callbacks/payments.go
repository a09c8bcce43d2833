package callbacks

import (
	"context"

	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/common"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleApprovePayment одобряет оплату
func HandleApprovePayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	decidePayment(ctx, b, callback, h, model.PaymentStatusApproved, "✅ Оплата одобрена")
}

// HandleRejectPayment отклоняет оплату
func HandleRejectPayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	decidePayment(ctx, b, callback, h, model.PaymentStatusRejected, "🚫 Оплата отклонена")
}

func decidePayment(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	status model.PaymentStatus,
	done string,
) {
	paymentID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	payment, err := h.PaymentService.SetStatus(ctx, paymentID, string(status))
	if err != nil {
		h.Logger.Error("Failed to set payment status from bot",
			zap.String("payment_id", paymentID.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, done)
	common.RefreshPaymentMessage(ctx, b, callback, payment, h.Logger)
}

// HandleUnlockPayment открывает курс по одобренной оплате
func HandleUnlockPayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	paymentID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	result, err := h.AccessService.Unlock(ctx, paymentID)
	if err != nil {
		h.Logger.Error("Failed to unlock course from bot",
			zap.String("payment_id", paymentID.String()),
			zap.Error(err),
		)
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text := "🔓 Курс открыт"
	if !result.Created {
		text = "ℹ️ Курс уже был открыт"
	}

	common.AnswerCallback(ctx, b, callback.ID, text)
	common.RefreshPaymentMessage(ctx, b, callback, result.Payment, h.Logger)
}
