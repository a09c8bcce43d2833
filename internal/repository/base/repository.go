package base

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTimeout ограничение на один запрос к БД, если не задано иное
const DefaultTimeout = 5 * time.Second

// Repository базовый репозиторий с общими методами
type Repository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(pool *pgxpool.Pool, timeout time.Duration) *Repository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Repository{pool: pool, timeout: timeout}
}

// Pool возвращает пул соединений
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// WithTimeout ограничивает время запроса; cancel вызывать после чтения результата
func (r *Repository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// IsNotFound проверяет является ли ошибка "строка не найдена"
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
