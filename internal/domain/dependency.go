package domain

import "time"

// DependencyType tags an edge with its scheduling semantics. The tag is
// stored and returned but never interpreted by the graph service.
type DependencyType string

const (
	FinishToStart DependencyType = "FINISH_TO_START"
	StartToStart  DependencyType = "START_TO_START"
	Blocking      DependencyType = "BLOCKING"

	// DefaultDependencyType is used when a request omits the type.
	DefaultDependencyType = FinishToStart
)

// ValidDependencyTypes contains all valid dependency types.
var ValidDependencyTypes = []DependencyType{FinishToStart, StartToStart, Blocking}

// IsValid checks if the type is a known dependency type.
func (t DependencyType) IsValid() bool {
	for _, v := range ValidDependencyTypes {
		if t == v {
			return true
		}
	}
	return false
}

// DependencyEdge records that DependentTaskID cannot proceed until
// BlockingTaskID has finished. Edges are never updated in place.
type DependencyEdge struct {
	ID              string         `json:"id"`
	DependentTaskID string         `json:"dependent_task_id"`
	BlockingTaskID  string         `json:"blocking_task_id"`
	DependencyType  DependencyType `json:"dependency_type"`
	CreatedAt       time.Time      `json:"created_at"`
}

// BlockedBy is an edge where the listed task is the dependent, with the
// blocking task nested.
type BlockedBy struct {
	DependencyEdge
	BlockingTask TaskSummary `json:"blocking_task"`
}

// Blocks is an edge where the listed task is the blocker, with the
// dependent task nested.
type Blocks struct {
	DependencyEdge
	DependentTask TaskSummary `json:"dependent_task"`
}

// TaskDependencies lists both directions of edges touching one task.
type TaskDependencies struct {
	TaskID    string      `json:"task_id"`
	BlockedBy []BlockedBy `json:"blocked_by"`
	Blocks    []Blocks    `json:"blocks"`
}
