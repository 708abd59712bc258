// Package service holds the business rules of Hearth: the dependency graph
// engine and the project, task and audit operations around it.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

// AuditSink receives audit entries after a mutation has committed.
type AuditSink interface {
	Log(ctx context.Context, entry *domain.AuditEntry) error
}

// auditRecorder writes audit entries best-effort: a failed write is logged
// and never changes the outcome of the operation that produced it.
type auditRecorder struct {
	sink AuditSink
	log  *zap.Logger
}

func (r auditRecorder) record(ctx context.Context, entry *domain.AuditEntry) {
	if r.sink == nil {
		return
	}
	if err := r.sink.Log(context.WithoutCancel(ctx), entry); err != nil {
		r.log.Warn("audit write failed",
			zap.String("action", string(entry.Action)),
			zap.Any("metadata", entry.Metadata),
			zap.Error(err),
		)
	}
}

// storageError converts a repository error into a domain error. ErrNotFound
// is mapped by the caller, who knows which record was missing.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsDomainError(err); ok {
		return err
	}
	return domain.NewUnavailableError(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
