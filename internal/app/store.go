package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/course_payments/internal/config"
	"github.com/Freeeeeet/course_payments/internal/repository"
	"github.com/Freeeeeet/course_payments/internal/repository/base"
	"github.com/Freeeeeet/course_payments/internal/repository/memory"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Stores хранилища сервисов, выбранные по STORE
type Stores struct {
	Payments service.PaymentStore
	Access   service.AccessStore
	Reviews  service.ReviewStore

	pool *pgxpool.Pool
}

// OpenStores подключается к PostgreSQL и применяет миграции,
// либо создаёт хранилище в памяти
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &Stores{Payments: store, Access: store, Reviews: store}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("Connected to PostgreSQL")

	migrator, err := NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	repo := base.NewRepository(pool, cfg.StoreTimeout)

	return &Stores{
		Payments: repository.NewPaymentRepository(repo),
		Access:   repository.NewAccessRepository(repo),
		Reviews:  repository.NewReviewRepository(repo),
		pool:     pool,
	}, nil
}

// Close закрывает пул соединений
func (s *Stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
