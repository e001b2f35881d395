package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"calckit/internal/config"
)

// PostgresStore keeps state in a calculator_state table, one row per
// key, upserted on save.
type PostgresStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*PostgresStore, error) {
	const operation = "state.NewPostgres"

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStore{db: db, logger: logger}, nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	const query = `SELECT state FROM calculator_state WHERE state_key = $1`

	var data []byte
	err := s.db.GetContext(ctx, &data, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load state: %w", err)
	}
	return data, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, state json.RawMessage) error {
	const query = `
        INSERT INTO calculator_state (state_key, state, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (state_key)
        DO UPDATE SET state = EXCLUDED.state, updated_at = now()
    `

	if _, err := s.db.ExecContext(ctx, query, key, []byte(state)); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM calculator_state WHERE state_key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

// PurgeOlderThan removes rows not touched for the given age. The serve
// loop calls it periodically so the table tracks the Redis TTL instead
// of growing without bound.
func (s *PostgresStore) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	const query = `DELETE FROM calculator_state WHERE updated_at < now() - $1::interval`

	res, err := s.db.ExecContext(ctx, query, fmt.Sprintf("%d seconds", int(age.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("failed to purge state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	return n, nil
}

// DB exposes the underlying handle for running migrations.
func (s *PostgresStore) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
