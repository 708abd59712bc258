package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

type auditRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// Log records an audit entry.
func (r *auditRepository) Log(ctx context.Context, entry *domain.AuditEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode audit metadata: %w", err)
	}

	result, err := pick(r.db, r.tx).ExecContext(ctx, `
		INSERT INTO audit_log (family_id, member_id, action, result, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.FamilyID, entry.MemberID, entry.Action, entry.Result, string(metadata), formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to log audit entry: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// Query returns audit entries matching the specified options.
func (r *auditRepository) Query(ctx context.Context, opts storage.AuditQueryOptions) ([]*domain.AuditEntry, error) {
	opts.Normalize()

	conditions := []string{"family_id = ?"}
	args := []interface{}{opts.FamilyID}

	if opts.Action != nil {
		conditions = append(conditions, "action = ?")
		args = append(args, *opts.Action)
	}
	if opts.MemberID != nil {
		conditions = append(conditions, "member_id = ?")
		args = append(args, *opts.MemberID)
	}
	if opts.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, formatTime(*opts.Since))
	}
	if opts.Until != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, formatTime(*opts.Until))
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
		SELECT id, family_id, member_id, action, result, metadata, created_at
		FROM audit_log
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, strings.Join(conditions, " AND "))

	rows, err := pick(r.db, r.tx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []*domain.AuditEntry{}
	for rows.Next() {
		var entry domain.AuditEntry
		var metadata, createdAt string
		if err := rows.Scan(&entry.ID, &entry.FamilyID, &entry.MemberID, &entry.Action,
			&entry.Result, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if err := json.Unmarshal([]byte(metadata), &entry.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode audit metadata: %w", err)
		}
		entry.CreatedAt = parseTime(createdAt)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}
	return entries, nil
}
