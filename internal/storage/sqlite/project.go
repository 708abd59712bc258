package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/storage"
)

type projectRepository struct {
	db *sql.DB
	tx *sql.Tx
}

const projectColumns = "id, family_id, name, description, status, start_date, due_date, budget, notes, created_by_id, created_at, updated_at"

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	_, err := pick(r.db, r.tx).ExecContext(ctx,
		"INSERT INTO projects ("+projectColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.FamilyID, p.Name, p.Description, p.Status,
		nullableTime(p.StartDate), nullableTime(p.DueDate), p.Budget, p.Notes,
		p.CreatedByID, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	row := pick(r.db, r.tx).QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *projectRepository) ListByFamily(ctx context.Context, familyID string) ([]*domain.Project, error) {
	rows, err := pick(r.db, r.tx).QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE family_id = ? ORDER BY created_at, id", familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	result, err := pick(r.db, r.tx).ExecContext(ctx, `
		UPDATE projects
		SET name = ?, description = ?, status = ?, start_date = ?, due_date = ?, budget = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Status, nullableTime(p.StartDate), nullableTime(p.DueDate),
		p.Budget, p.Notes, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRow(result)
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	result, err := pick(r.db, r.tx).ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireRow(result)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var description, notes, startDate, dueDate sql.NullString
	var budget sql.NullFloat64
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.FamilyID, &p.Name, &description, &p.Status,
		&startDate, &dueDate, &budget, &notes,
		&p.CreatedByID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Description = nullString(description)
	p.Notes = nullString(notes)
	p.StartDate = nullTime(startDate)
	p.DueDate = nullTime(dueDate)
	p.Budget = nullFloat(budget)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
