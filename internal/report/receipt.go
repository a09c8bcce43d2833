package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/jung-kurt/gofpdf"
)

// Receipt PDF-квитанция одобренной оплаты. access может быть nil, если курс ещё не открыт.
func Receipt(p *model.Payment, access *model.CourseAccess) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Payment receipt "+p.ID.String(), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(14)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, tr(value), "", 1, "L", false, 0, "")
	}

	line("Payment ID:", p.ID.String())
	line("Name:", p.Name)
	line("Email:", p.Email)
	line("Phone:", p.Phone)
	line("Course:", p.CourseID)
	line("Method:", p.PaymentMethod)
	line("Transaction:", p.TxnID)
	line("Amount:", fmt.Sprintf("%.2f %s", p.Amount, p.Currency))
	line("Status:", string(p.Status))
	line("Submitted:", p.CreatedAt.Format(time.RFC1123))

	if access != nil {
		line("Access granted:", access.AccessDate.Format(time.RFC1123))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	return buf.Bytes(), nil
}
