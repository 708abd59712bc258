// Package storage defines the repository contracts shared by the SQLite and
// PostgreSQL backends.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hearthapp/hearth/internal/domain"
)

// Common sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// AuditQueryOptions specifies filtering options for querying audit logs.
type AuditQueryOptions struct {
	FamilyID string
	Action   *string
	MemberID *string
	Since    *time.Time
	Until    *time.Time
	Limit    int
}

// Normalize applies the default and maximum limit.
func (o *AuditQueryOptions) Normalize() {
	if o.Limit < 1 {
		o.Limit = 50
	}
	if o.Limit > 500 {
		o.Limit = 500
	}
}

// Store is the main interface for accessing all repositories.
type Store interface {
	Projects() ProjectRepository
	Tasks() TaskRepository
	Dependencies() DependencyRepository
	AuditLogs() AuditRepository

	// WithProjectTx runs fn in a transaction that is serialized against every
	// other WithProjectTx call for the same project. Calls for different
	// projects do not wait on each other. If fn returns an error, the
	// transaction is rolled back.
	WithProjectTx(ctx context.Context, projectID string, fn func(TxStore) error) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// TxStore provides access to repositories within a transaction context.
type TxStore interface {
	Projects() ProjectRepository
	Tasks() TaskRepository
	Dependencies() DependencyRepository
}

// ProjectRepository defines operations for managing projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error

	// Get returns ErrNotFound if the project does not exist.
	Get(ctx context.Context, id string) (*domain.Project, error)

	ListByFamily(ctx context.Context, familyID string) ([]*domain.Project, error)

	// Update writes every mutable field. Returns ErrNotFound if the project
	// does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project and, by cascade, its tasks and their edges.
	// Returns ErrNotFound if the project does not exist.
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines operations for managing tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error

	// Get retrieves a task with FamilyID resolved from its project.
	// Returns ErrNotFound if the task does not exist.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// ListByProject returns tasks ordered by sort order then creation time.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)

	// Update writes every mutable field.
	// Returns ErrNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task and, by cascade, every edge touching it.
	// Returns ErrNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error
}

// DependencyRepository persists dependency edges. It holds no business rules.
type DependencyRepository interface {
	// FindByID returns ErrNotFound if no edge has the id.
	FindByID(ctx context.Context, id string) (*domain.DependencyEdge, error)

	// FindByPair returns the edge for the ordered pair or ErrNotFound.
	FindByPair(ctx context.Context, dependentID, blockingID string) (*domain.DependencyEdge, error)

	// ListForProject returns every edge whose dependent task belongs to the project.
	ListForProject(ctx context.Context, projectID string) ([]*domain.DependencyEdge, error)

	// ListForTask returns the edges where the task is dependent and where
	// it is blocking, each with the other endpoint summarised.
	ListForTask(ctx context.Context, taskID string) (*domain.TaskDependencies, error)

	// Insert returns ErrDuplicate if the pair already has an edge.
	Insert(ctx context.Context, edge *domain.DependencyEdge) error

	// DeleteByID returns ErrNotFound if no row was removed.
	DeleteByID(ctx context.Context, id string) error
}

// AuditRepository defines operations for audit logging.
type AuditRepository interface {
	// Log records an audit entry and sets its ID.
	Log(ctx context.Context, entry *domain.AuditEntry) error

	// Query returns entries matching opts, newest first.
	Query(ctx context.Context, opts AuditQueryOptions) ([]*domain.AuditEntry, error)
}
