package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

type auditRepository struct {
	q querier
}

// Log records an audit entry.
func (r *auditRepository) Log(ctx context.Context, entry *domain.AuditEntry) error {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO audit_log (family_id, member_id, action, result, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		entry.FamilyID, entry.MemberID, string(entry.Action), entry.Result, metadata, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to log audit entry: %w", err)
	}
	return nil
}

// Query returns audit entries matching the specified options.
func (r *auditRepository) Query(ctx context.Context, opts storage.AuditQueryOptions) ([]*domain.AuditEntry, error) {
	opts.Normalize()

	conditions := []string{"family_id = $1"}
	args := []any{opts.FamilyID}
	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if opts.Action != nil {
		add("action = $%d", *opts.Action)
	}
	if opts.MemberID != nil {
		add("member_id = $%d", *opts.MemberID)
	}
	if opts.Since != nil {
		add("created_at >= $%d", *opts.Since)
	}
	if opts.Until != nil {
		add("created_at <= $%d", *opts.Until)
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
		SELECT id, family_id, member_id, action, result, metadata, created_at
		FROM audit_log
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d`, strings.Join(conditions, " AND "), len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []*domain.AuditEntry{}
	for rows.Next() {
		var entry domain.AuditEntry
		var action string
		if err := rows.Scan(&entry.ID, &entry.FamilyID, &entry.MemberID, &action,
			&entry.Result, &entry.Metadata, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.Action = domain.AuditAction(action)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}
	return entries, nil
}
