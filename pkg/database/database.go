package database

import (
	"context"
	"fmt"
	"time"

	"novel-board/internal/retry"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Config содержит настройки пула подключений PostgreSQL
type Config struct {
	DSN         string
	MaxConns    int
	IdleTimeout time.Duration
	// Повторы подключения при старте (база может подниматься дольше сервиса)
	ConnectAttempts int
	ConnectDelay    time.Duration
}

// Connect создает пул и проверяет подключение, повторяя попытки по политике.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	log := logger.Named("Postgres")

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	policy := retry.Policy{
		MaxAttempts: cfg.ConnectAttempts,
		Delay:       cfg.ConnectDelay,
		OnRetry: func(attempt int, err error) {
			log.Warn("Postgres connection failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", cfg.ConnectAttempts),
				zap.Error(err),
			)
		},
	}

	var pool *pgxpool.Pool
	err = policy.Do(ctx, func(ctx context.Context, attempt int) error {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		p, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		if err != nil {
			return fmt.Errorf("unable to create postgres connection pool: %w", err)
		}
		if err := p.Ping(connectCtx); err != nil {
			p.Close()
			return fmt.Errorf("unable to ping postgres database: %w", err)
		}
		pool = p
		log.Info("Successfully connected and pinged PostgreSQL", zap.Int("attempt", attempt))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// TxBeginner - источник транзакций (*pgxpool.Pool, pgx.Conn).
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx выполняет fn в рамках транзакции, коммитит при успехе или откатывает при ошибке.
func WithTx(ctx context.Context, db TxBeginner, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	// Откат при панике
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.Background())
			panic(r)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}
