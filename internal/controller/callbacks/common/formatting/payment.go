package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/service"
)

const dateLayout = "02.01.2006 15:04"

// Payment карточка оплаты для админ-чата
func Payment(p *model.Payment) string {
	display := GetPaymentStatusDisplay(p.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Оплата %s\n\n", display.Emoji, p.ID)
	fmt.Fprintf(&sb, "👤 %s\n", p.Name)
	fmt.Fprintf(&sb, "📧 %s\n", p.Email)
	fmt.Fprintf(&sb, "📱 %s\n", p.Phone)
	fmt.Fprintf(&sb, "📚 Курс: %s\n", p.CourseID)
	fmt.Fprintf(&sb, "💳 %s, транзакция %s\n", p.PaymentMethod, p.TxnID)
	fmt.Fprintf(&sb, "💰 %s\n", FormatAmount(p.Amount, p.Currency))
	fmt.Fprintf(&sb, "📊 Статус: %s\n", display.Text)
	fmt.Fprintf(&sb, "📅 Создана: %s", p.CreatedAt.Format(dateLayout))

	if p.UnlockedAt != nil {
		fmt.Fprintf(&sb, "\n🔓 Курс открыт: %s", p.UnlockedAt.Format(dateLayout))
	}

	return sb.String()
}

// Review уведомление о новом отзыве
func Review(r *model.Review) string {
	display := GetReviewStatusDisplay(r.Status)

	text := fmt.Sprintf(
		"📝 Новый отзыв\n\n"+
			"📚 Курс: %s\n"+
			"👤 %s (%s)\n"+
			"%s\n"+
			"📊 %s %s",
		r.CourseID,
		r.Name, r.Email,
		Stars(r.Rating),
		display.Emoji, display.Text,
	)

	if r.Comment != "" {
		text += "\n\n" + r.Comment
	}

	return text
}

// Stars рейтинг звёздами: 3 -> ⭐⭐⭐☆☆
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > model.MaxRating {
		rating = model.MaxRating
	}
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", model.MaxRating-rating)
}

// Summary сводка по статусам
func Summary(s *service.Summary) string {
	return fmt.Sprintf(
		"📊 Сводка\n\n"+
			"Оплаты:\n"+
			"⏳ Ожидают: %d\n"+
			"✅ Одобрены: %d\n"+
			"🚫 Отклонены: %d\n\n"+
			"Отзывы:\n"+
			"⏳ На модерации: %d\n"+
			"✅ Опубликованы: %d\n"+
			"🚫 Отклонены: %d",
		s.Payments[model.PaymentStatusPending],
		s.Payments[model.PaymentStatusApproved],
		s.Payments[model.PaymentStatusRejected],
		s.Reviews[model.ReviewStatusPending],
		s.Reviews[model.ReviewStatusApproved],
		s.Reviews[model.ReviewStatusRejected],
	)
}
