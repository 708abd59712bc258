// Package sqlite implements the storage contracts on top of SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hearthapp/hearth/internal/storage"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

// nullableTime returns the stored form of an optional timestamp.
func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func nullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t := parseTime(s.String)
	return &t
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

// Store implements storage.Store using SQLite.
type Store struct {
	db    *sql.DB
	locks *projectLocks

	closeOnce sync.Once
	closeErr  error

	projects *projectRepository
	tasks    *taskRepository
	deps     *dependencyRepository
	audit    *auditRepository
}

// Open creates a SQLite-backed store and applies pending migrations.
// The dsn can be a file path or ":memory:".
func Open(dsn string) (*Store, error) {
	connStr := dsn
	if !strings.Contains(dsn, "?") {
		connStr += "?"
	} else {
		connStr += "&"
	}
	connStr += "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_synchronous=NORMAL&_txlock=immediate"

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dsn == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{
		db:       db,
		locks:    newProjectLocks(),
		projects: &projectRepository{db: db},
		tasks:    &taskRepository{db: db},
		deps:     &dependencyRepository{db: db},
		audit:    &auditRepository{db: db},
	}, nil
}

func (s *Store) Projects() storage.ProjectRepository        { return s.projects }
func (s *Store) Tasks() storage.TaskRepository              { return s.tasks }
func (s *Store) Dependencies() storage.DependencyRepository { return s.deps }
func (s *Store) AuditLogs() storage.AuditRepository         { return s.audit }

// WithProjectTx holds the project's in-process lock for the lifetime of an
// immediate transaction.
func (s *Store) WithProjectTx(ctx context.Context, projectID string, fn func(storage.TxStore) error) error {
	release, err := s.locks.acquire(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to acquire project lock: %w", err)
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := &txStore{
		projects: &projectRepository{tx: tx},
		tasks:    &taskRepository{tx: tx},
		deps:     &dependencyRepository{tx: tx},
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection. Later calls return the first result.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

type txStore struct {
	projects *projectRepository
	tasks    *taskRepository
	deps     *dependencyRepository
}

func (s *txStore) Projects() storage.ProjectRepository        { return s.projects }
func (s *txStore) Tasks() storage.TaskRepository              { return s.tasks }
func (s *txStore) Dependencies() storage.DependencyRepository { return s.deps }

// dbExecutor is satisfied by both *sql.DB and *sql.Tx.
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func pick(db *sql.DB, tx *sql.Tx) dbExecutor {
	if tx != nil {
		return tx
	}
	return db
}

var _ storage.Store = (*Store)(nil)
