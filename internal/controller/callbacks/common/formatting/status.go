package formatting

import "github.com/Freeeeeet/course_payments/internal/model"

// StatusDisplay emoji и подпись статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetPaymentStatusDisplay возвращает emoji и текст для статуса оплаты
func GetPaymentStatusDisplay(status model.PaymentStatus) StatusDisplay {
	displays := map[model.PaymentStatus]StatusDisplay{
		model.PaymentStatusPending:  {"⏳", "Ожидает проверки"},
		model.PaymentStatusApproved: {"✅", "Одобрена"},
		model.PaymentStatusRejected: {"🚫", "Отклонена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetReviewStatusDisplay возвращает emoji и текст для статуса модерации отзыва
func GetReviewStatusDisplay(status model.ReviewStatus) StatusDisplay {
	displays := map[model.ReviewStatus]StatusDisplay{
		model.ReviewStatusPending:  {"⏳", "На модерации"},
		model.ReviewStatusApproved: {"✅", "Опубликован"},
		model.ReviewStatusRejected: {"🚫", "Отклонён"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}
