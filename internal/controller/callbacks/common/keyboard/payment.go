package keyboard

import (
	"github.com/Freeeeeet/course_payments/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/go-telegram/bot/models"
)

// PaymentActions кнопки для текущего статуса оплаты; nil, если действий нет
func PaymentActions(p *model.Payment) *models.InlineKeyboardMarkup {
	id := p.ID.String()
	kb := NewBuilder()

	switch {
	case p.IsPending():
		kb.Row(
			Button("✅ Одобрить", callbacktypes.ApprovePayment+id),
			Button("❌ Отклонить", callbacktypes.RejectPayment+id),
		)
	case p.IsApproved() && !p.Processed:
		kb.Row(Button("🔓 Открыть курс", callbacktypes.UnlockPayment+id))
	}

	if kb.Len() == 0 {
		return nil
	}
	return kb.Build()
}
