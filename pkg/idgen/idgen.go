// Package idgen generates the opaque identifiers used for projects, tasks
// and dependency edges.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Prefixes for each kind of record.
const (
	ProjectPrefix    = "prj"
	TaskPrefix       = "tsk"
	DependencyPrefix = "dep"
)

// Generate creates a new unique ID in the format "<prefix>_<uuid>".
func Generate(prefix string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return fmt.Sprintf("%s_%s", prefix, id.String()), nil
}

// NewProjectID returns a fresh project identifier.
func NewProjectID() (string, error) { return Generate(ProjectPrefix) }

// NewTaskID returns a fresh task identifier.
func NewTaskID() (string, error) { return Generate(TaskPrefix) }

// NewDependencyID returns a fresh dependency edge identifier.
func NewDependencyID() (string, error) { return Generate(DependencyPrefix) }
