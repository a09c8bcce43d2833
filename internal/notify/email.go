package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/course_payments/internal/events"
	"github.com/Freeeeeet/course_payments/internal/model"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender отправляет письма; *gomail.Dialer подходит
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier пишет плательщику о решении по оплате и открытии курса
type EmailNotifier struct {
	sender Sender
	from   string
	logger *zap.Logger
}

func NewEmailNotifier(host string, port int, user, pass, from string, logger *zap.Logger) *EmailNotifier {
	return NewEmailNotifierWithSender(gomail.NewDialer(host, port, user, pass), from, logger)
}

func NewEmailNotifierWithSender(sender Sender, from string, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, logger: logger}
}

// Publish отправляет письмо в фоне, чтобы SMTP не задерживал запрос
func (n *EmailNotifier) Publish(_ context.Context, event events.Event) error {
	msg := Compose(n.from, event)
	if msg == nil {
		return nil
	}

	to := strings.Join(msg.GetHeader("To"), ",")
	go func() {
		if err := n.sender.DialAndSend(msg); err != nil {
			n.logger.Error("Failed to send email",
				zap.String("event", string(event.Type)),
				zap.String("to", to),
				zap.Error(err),
			)
			return
		}
		n.logger.Info("Email sent", zap.String("event", string(event.Type)), zap.String("to", to))
	}()

	return nil
}

// Compose собирает письмо для события; nil, если письмо не нужно
func Compose(from string, event events.Event) *gomail.Message {
	p := event.Payment
	if p == nil || p.Email == "" {
		return nil
	}

	var subject, body string
	switch event.Type {
	case events.PaymentApproved:
		subject = fmt.Sprintf("Payment approved for course %s", p.CourseID)
		body = fmt.Sprintf(
			"<p>Dear %s,</p><p>Your payment <b>%s</b> of %s has been approved. "+
				"You can now unlock course <b>%s</b>.</p>",
			html.EscapeString(p.Name), html.EscapeString(p.TxnID), formatAmount(p), html.EscapeString(p.CourseID),
		)
	case events.PaymentRejected:
		subject = fmt.Sprintf("Payment rejected for course %s", p.CourseID)
		body = fmt.Sprintf(
			"<p>Dear %s,</p><p>Unfortunately your payment <b>%s</b> could not be verified and was rejected. "+
				"Please check the transaction reference and submit again.</p>",
			html.EscapeString(p.Name), html.EscapeString(p.TxnID),
		)
	case events.CourseUnlocked:
		subject = fmt.Sprintf("Course %s unlocked", p.CourseID)
		body = fmt.Sprintf(
			"<p>Dear %s,</p><p>Course <b>%s</b> is now unlocked. Thank you for your payment!</p>",
			html.EscapeString(p.Name), html.EscapeString(p.CourseID),
		)
	default:
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", p.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

func formatAmount(p *model.Payment) string {
	return fmt.Sprintf("%.2f %s", p.Amount, p.Currency)
}
