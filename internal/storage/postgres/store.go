// Package postgres implements the storage contracts on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/storage"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements storage.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger

	projects *projectRepository
	tasks    *taskRepository
	deps     *dependencyRepository
	audit    *auditRepository
}

type backoff struct {
	maxRetries int
	delay      time.Duration
	maxDelay   time.Duration
}

func (b backoff) nextDelay(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay {
		return b.maxDelay
	}
	return d
}

// Open connects with retry, verifies the connection and applies migrations.
func Open(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	cfg.MaxConns = 25
	cfg.MaxConnLifetime = 5 * time.Minute

	b := backoff{maxRetries: 5, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}

	var pool *pgxpool.Pool
	for attempt := 0; ; attempt++ {
		pool, err = connect(ctx, cfg)
		if err == nil {
			break
		}
		if attempt >= b.maxRetries {
			return nil, fmt.Errorf("open postgres failed after retries: %w", err)
		}
		log.Warn("postgres not ready, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open postgres canceled: %w", ctx.Err())
		case <-time.After(b.nextDelay(attempt)):
		}
	}

	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{
		pool:     pool,
		log:      log,
		projects: &projectRepository{q: pool},
		tasks:    &taskRepository{q: pool},
		deps:     &dependencyRepository{q: pool},
		audit:    &auditRepository{q: pool},
	}, nil
}

func connect(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return pool, nil
}

func (s *Store) Projects() storage.ProjectRepository        { return s.projects }
func (s *Store) Tasks() storage.TaskRepository              { return s.tasks }
func (s *Store) Dependencies() storage.DependencyRepository { return s.deps }
func (s *Store) AuditLogs() storage.AuditRepository         { return s.audit }

// WithProjectTx takes a transaction-scoped advisory lock keyed on the
// project id, so writers of one project queue behind each other across
// every process sharing the database.
func (s *Store) WithProjectTx(ctx context.Context, projectID string, fn func(storage.TxStore) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", projectID); err != nil {
			return fmt.Errorf("failed to acquire project lock: %w", err)
		}
		return fn(&txStore{
			projects: &projectRepository{q: tx},
			tasks:    &taskRepository{q: tx},
			deps:     &dependencyRepository{q: tx},
		})
	})
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

type txStore struct {
	projects *projectRepository
	tasks    *taskRepository
	deps     *dependencyRepository
}

func (s *txStore) Projects() storage.ProjectRepository        { return s.projects }
func (s *txStore) Tasks() storage.TaskRepository              { return s.tasks }
func (s *txStore) Dependencies() storage.DependencyRepository { return s.deps }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func notFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

var _ storage.Store = (*Store)(nil)
