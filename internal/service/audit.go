package service

import (
	"context"
	"time"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

// AuditService handles audit log queries.
type AuditService struct {
	auditRepo storage.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo storage.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// QueryInput contains the input for querying the audit log.
type QueryInput struct {
	Action    *string
	MemberID  *string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
}

// Query returns the caller's family audit entries, newest first.
func (s *AuditService) Query(ctx context.Context, scope domain.Scope, input QueryInput) ([]*domain.AuditEntry, error) {
	if input.Action != nil && !domain.AuditAction(*input.Action).IsValid() {
		return nil, domain.NewValidationError([]string{"unknown audit action"})
	}
	entries, err := s.auditRepo.Query(ctx, storage.AuditQueryOptions{
		FamilyID: scope.FamilyID,
		Action:   input.Action,
		MemberID: input.MemberID,
		Since:    input.StartTime,
		Until:    input.EndTime,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, storageError(err)
	}
	return entries, nil
}
