package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/course_payments/internal/model"
	"github.com/Freeeeeet/course_payments/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const accessColumns = `id, payment_id, user_id, course_id, access_granted, access_date`

type AccessRepository struct {
	*base.Repository
}

func NewAccessRepository(repo *base.Repository) *AccessRepository {
	return &AccessRepository{Repository: repo}
}

func scanAccess(row pgx.Row) (*model.CourseAccess, error) {
	var a model.CourseAccess
	err := row.Scan(
		&a.ID,
		&a.PaymentID,
		&a.UserID,
		&a.CourseID,
		&a.AccessGranted,
		&a.AccessDate,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GrantAccess находит или создаёт доступ по оплате и отмечает оплату как обработанную.
// Уникальный индекс по payment_id гарантирует один доступ даже при параллельных вызовах.
func (r *AccessRepository) GrantAccess(ctx context.Context, access *model.CourseAccess) (*model.CourseAccess, bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO course_access (id, payment_id, user_id, course_id, access_granted, access_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (payment_id) DO NOTHING
		RETURNING ` + accessColumns

	granted, err := scanAccess(tx.QueryRow(
		ctx, insert,
		access.ID,
		access.PaymentID,
		access.UserID,
		access.CourseID,
		access.AccessGranted,
		access.AccessDate,
	))

	if err != nil && !base.IsNotFound(err) {
		return nil, false, fmt.Errorf("insert access: %w", err)
	}

	// Доступ уже был: возвращаем существующую запись
	if granted == nil {
		existing, err := scanAccess(tx.QueryRow(ctx,
			`SELECT `+accessColumns+` FROM course_access WHERE payment_id = $1`,
			access.PaymentID,
		))
		if err != nil {
			return nil, false, fmt.Errorf("get existing access: %w", err)
		}
		return existing, false, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE payments
		SET processed = TRUE, unlocked_at = COALESCE(unlocked_at, $2), updated_at = NOW()
		WHERE id = $1
	`, access.PaymentID, access.AccessDate)
	if err != nil {
		return nil, false, fmt.Errorf("mark payment processed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit transaction: %w", err)
	}

	return granted, true, nil
}

// GetAccessByPayment получает доступ по оплате
func (r *AccessRepository) GetAccessByPayment(ctx context.Context, paymentID uuid.UUID) (*model.CourseAccess, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `SELECT ` + accessColumns + ` FROM course_access WHERE payment_id = $1`

	access, err := scanAccess(r.Pool().QueryRow(ctx, query, paymentID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get access: %w", err)
	}

	return access, nil
}
