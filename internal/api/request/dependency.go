package request

// AddDependencyRequest represents a request to add a dependency. The
// dependent task comes from the URL. Only the JSON shape is checked here;
// id and type rules are enforced by the dependency service so that every
// caller sees the same errors.
type AddDependencyRequest struct {
	BlockingTaskID string  `json:"blocking_task_id"`
	DependencyType *string `json:"dependency_type,omitempty"`
}
