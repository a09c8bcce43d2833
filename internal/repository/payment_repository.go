package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, name, email, phone, payment_method, txn_id, course_id, amount, currency,
	status, processed, unlocked_at, created_at, updated_at`

type PaymentRepository struct {
	*base.Repository
}

func NewPaymentRepository(repo *base.Repository) *PaymentRepository {
	return &PaymentRepository{Repository: repo}
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.PaymentMethod,
		&p.TxnID,
		&p.CourseID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.Processed,
		&p.UnlockedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayment создает оплату
func (r *PaymentRepository) CreatePayment(ctx context.Context, p *model.Payment) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, name, email, phone, payment_method, txn_id, course_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING processed, created_at, updated_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		p.ID,
		p.Name,
		p.Email,
		p.Phone,
		p.PaymentMethod,
		p.TxnID,
		p.CourseID,
		p.Amount,
		p.Currency,
		p.Status,
	).Scan(&p.Processed, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

// GetPayment получает оплату по ID
func (r *PaymentRepository) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return payment, nil
}

// ListPayments получает оплаты, новые первыми
func (r *PaymentRepository) ListPayments(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE ($1::text = '' OR status = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.Pool().Query(ctx, query, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*model.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

// TransitionPaymentStatus обновляет статус, если текущий входит в from
func (r *PaymentRepository) TransitionPaymentStatus(ctx context.Context, id uuid.UUID, to model.PaymentStatus, from ...model.PaymentStatus) (*model.Payment, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}

	query := `
		UPDATE payments
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND (cardinality($3::text[]) = 0 OR status = ANY($3))
		RETURNING ` + paymentColumns

	payment, err := scanPayment(r.Pool().QueryRow(ctx, query, id, string(to), allowed))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	return payment, nil
}
