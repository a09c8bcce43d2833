package report

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/xuri/excelize/v2"
)

const PaymentsSheet = "Payments"

var paymentHeaders = []any{
	"Payment ID", "Name", "Email", "Phone", "Method", "Txn ID", "Course",
	"Amount", "Currency", "Status", "Processed", "Unlocked At", "Created At",
}

// PaymentsWorkbook выгрузка оплат для администратора, одна строка на оплату
func PaymentsWorkbook(payments []*model.Payment) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", PaymentsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(PaymentsSheet, "A1", &paymentHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	if err := f.SetRowStyle(PaymentsSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, p := range payments {
		unlockedAt := ""
		if p.UnlockedAt != nil {
			unlockedAt = p.UnlockedAt.Format(time.RFC3339)
		}

		row := []any{
			p.ID.String(), p.Name, p.Email, p.Phone, p.PaymentMethod, p.TxnID, p.CourseID,
			p.Amount, p.Currency, string(p.Status), p.Processed, unlockedAt, p.CreatedAt.Format(time.RFC3339),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(PaymentsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write payment %s: %w", p.ID, err)
		}
	}

	if err := f.SetColWidth(PaymentsSheet, "A", "M", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return f, nil
}
