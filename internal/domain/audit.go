package domain

import "time"

// AuditAction represents the type of action recorded in an audit entry.
type AuditAction string

const (
	ActionAddEdge       AuditAction = "PROJECT_DEPENDENCY_ADDED"
	ActionRemoveEdge    AuditAction = "PROJECT_DEPENDENCY_REMOVED"
	ActionProjectCreate AuditAction = "PROJECT_CREATED"
	ActionProjectUpdate AuditAction = "PROJECT_UPDATED"
	ActionProjectDelete AuditAction = "PROJECT_DELETED"
	ActionTaskCreate    AuditAction = "PROJECT_TASK_CREATED"
	ActionTaskUpdate    AuditAction = "PROJECT_TASK_UPDATED"
	ActionTaskDelete    AuditAction = "PROJECT_TASK_DELETED"
)

// ValidAuditActions contains all valid audit action values.
var ValidAuditActions = []AuditAction{
	ActionAddEdge,
	ActionRemoveEdge,
	ActionProjectCreate,
	ActionProjectUpdate,
	ActionProjectDelete,
	ActionTaskCreate,
	ActionTaskUpdate,
	ActionTaskDelete,
}

// IsValid checks if the action is a valid audit action.
func (a AuditAction) IsValid() bool {
	for _, v := range ValidAuditActions {
		if a == v {
			return true
		}
	}
	return false
}

// ResultSuccess is the only result recorded today; rejected mutations are
// not audited.
const ResultSuccess = "SUCCESS"

// AuditEntry represents a single change in the audit log.
type AuditEntry struct {
	ID        int64             `json:"id"`
	FamilyID  string            `json:"family_id"`
	MemberID  string            `json:"member_id"`
	Action    AuditAction       `json:"action"`
	Result    string            `json:"result"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewAuditEntry creates a successful audit entry for the caller.
func NewAuditEntry(scope Scope, action AuditAction) *AuditEntry {
	return &AuditEntry{
		FamilyID:  scope.FamilyID,
		MemberID:  scope.MemberID,
		Action:    action,
		Result:    ResultSuccess,
		Metadata:  map[string]string{},
		CreatedAt: time.Now().UTC(),
	}
}

// With sets a metadata key on the entry.
func (e *AuditEntry) With(key, value string) *AuditEntry {
	if e.Metadata == nil {
		e.Metadata = map[string]string{}
	}
	e.Metadata[key] = value
	return e
}

// NewEdgeAuditEntry builds the AddEdge/RemoveEdge record for an edge of projectID.
func NewEdgeAuditEntry(scope Scope, action AuditAction, projectID string, edge *DependencyEdge) *AuditEntry {
	return NewAuditEntry(scope, action).
		With("project_id", projectID).
		With("dependency_id", edge.ID).
		With("dependent_task_id", edge.DependentTaskID).
		With("blocking_task_id", edge.BlockingTaskID)
}
