package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error for callers that only need the
// category, such as the HTTP layer when choosing a status code.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindNotFound        ErrorKind = "not_found"
	KindForbidden       ErrorKind = "forbidden"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindConflict        ErrorKind = "conflict"
	KindUnavailable     ErrorKind = "unavailable"
	KindInternal        ErrorKind = "internal"
)

// ErrorCode represents a domain error code.
type ErrorCode string

const (
	ErrCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrCodeSelfDependency         ErrorCode = "SELF_DEPENDENCY"
	ErrCodeCrossProjectDependency ErrorCode = "CROSS_PROJECT_DEPENDENCY"
	ErrCodeTaskNotFound           ErrorCode = "TASK_NOT_FOUND"
	ErrCodeProjectNotFound        ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeDependencyNotFound     ErrorCode = "DEPENDENCY_NOT_FOUND"
	ErrCodeTemplateNotFound       ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeForbidden              ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized           ErrorCode = "UNAUTHORIZED"
	ErrCodeDependencyExists       ErrorCode = "DEPENDENCY_EXISTS"
	ErrCodeCycleDetected          ErrorCode = "CYCLE_DETECTED"
	ErrCodeUnavailable            ErrorCode = "UNAVAILABLE"
	ErrCodeInternalError          ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents an error in the domain layer with context.
type DomainError struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
	Context map[string]interface{}
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// AsDomainError extracts a *DomainError from err.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for non-domain errors.
func KindOf(err error) ErrorKind {
	if de, ok := AsDomainError(err); ok {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsDomainError(err)
	return ok && de.Kind == kind
}

// NewValidationError creates a validation error.
func NewValidationError(details []string) *DomainError {
	return &DomainError{
		Kind:    KindInvalidArgument,
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Context: map[string]interface{}{"details": details},
	}
}

// NewInvalidArgumentError creates a validation error with a specific message.
func NewInvalidArgumentError(message string) *DomainError {
	return &DomainError{
		Kind:    KindInvalidArgument,
		Code:    ErrCodeValidationFailed,
		Message: message,
		Context: map[string]interface{}{},
	}
}

// NewMissingBlockingTaskError is returned when no blocking task id was supplied.
func NewMissingBlockingTaskError() *DomainError {
	return NewInvalidArgumentError("Blocking task ID is required")
}

// NewInvalidDependencyTypeError creates an error for an unknown dependency type.
func NewInvalidDependencyTypeError(t DependencyType) *DomainError {
	return &DomainError{
		Kind:    KindInvalidArgument,
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("Invalid dependency type %q", string(t)),
		Context: map[string]interface{}{"dependency_type": string(t)},
	}
}

// NewSelfDependencyError creates an error for an edge from a task to itself.
func NewSelfDependencyError(taskID string) *DomainError {
	return &DomainError{
		Kind:    KindInvalidArgument,
		Code:    ErrCodeSelfDependency,
		Message: "A task cannot depend on itself",
		Context: map[string]interface{}{"task_id": taskID},
	}
}

// NewCrossProjectError creates an error for an edge spanning two projects.
func NewCrossProjectError() *DomainError {
	return &DomainError{
		Kind:    KindInvalidArgument,
		Code:    ErrCodeCrossProjectDependency,
		Message: "Tasks must belong to the same project",
		Context: map[string]interface{}{},
	}
}

// NewTaskNotFoundError creates a task not found error. role names which end
// of an edge was missing ("dependent", "blocking") or is empty for a plain lookup.
func NewTaskNotFoundError(role, taskID string) *DomainError {
	msg := "Task not found"
	switch role {
	case "dependent":
		msg = "Dependent task not found"
	case "blocking":
		msg = "Blocking task not found"
	}
	return &DomainError{
		Kind:    KindNotFound,
		Code:    ErrCodeTaskNotFound,
		Message: msg,
		Context: map[string]interface{}{"id": taskID},
	}
}

// NewProjectNotFoundError creates a project not found error.
func NewProjectNotFoundError(projectID string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    ErrCodeProjectNotFound,
		Message: "Project not found",
		Context: map[string]interface{}{"id": projectID},
	}
}

// NewDependencyNotFoundError creates a dependency not found error.
func NewDependencyNotFoundError(edgeID string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    ErrCodeDependencyNotFound,
		Message: "Dependency not found",
		Context: map[string]interface{}{"id": edgeID},
	}
}

// NewTemplateNotFoundError creates a project template not found error.
func NewTemplateNotFoundError(templateID string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    ErrCodeTemplateNotFound,
		Message: "Template not found",
		Context: map[string]interface{}{"id": templateID},
	}
}

// NewForbiddenError creates an access denied error. The context is left
// empty so records of other families are not disclosed.
func NewForbiddenError(message string) *DomainError {
	if message == "" {
		message = "Access denied"
	}
	return &DomainError{
		Kind:    KindForbidden,
		Code:    ErrCodeForbidden,
		Message: message,
		Context: map[string]interface{}{},
	}
}

// NewUnauthorizedError creates an error for a request without identity.
func NewUnauthorizedError() *DomainError {
	return &DomainError{
		Kind:    KindUnauthorized,
		Code:    ErrCodeUnauthorized,
		Message: "Unauthorized",
		Context: map[string]interface{}{},
	}
}

// NewDependencyExistsError creates an error for a duplicate edge.
func NewDependencyExistsError(dependentID, blockingID string) *DomainError {
	return &DomainError{
		Kind:    KindConflict,
		Code:    ErrCodeDependencyExists,
		Message: "Dependency already exists",
		Context: map[string]interface{}{
			"dependent_task_id": dependentID,
			"blocking_task_id":  blockingID,
		},
	}
}

// NewCycleDetectedError creates a cycle detected error. The traversal path
// is deliberately not part of the error.
func NewCycleDetectedError(dependentID, blockingID string) *DomainError {
	return &DomainError{
		Kind:    KindConflict,
		Code:    ErrCodeCycleDetected,
		Message: "Circular dependency detected",
		Context: map[string]interface{}{
			"dependent_task_id": dependentID,
			"blocking_task_id":  blockingID,
		},
	}
}

// NewUnavailableError wraps a storage failure.
func NewUnavailableError(err error) *DomainError {
	return &DomainError{
		Kind:    KindUnavailable,
		Code:    ErrCodeUnavailable,
		Message: "Storage unavailable",
		Context: map[string]interface{}{},
		Err:     err,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(err error) *DomainError {
	return &DomainError{
		Kind:    KindInternal,
		Code:    ErrCodeInternalError,
		Message: "An internal error occurred",
		Context: map[string]interface{}{},
		Err:     err,
	}
}
