package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hearthapp/hearth/internal/client"
	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/identity"
)

func TestExitCodes_Distinct(t *testing.T) {
	codes := []int{ExitSuccess, ExitGeneralError, ExitServerNotRunning, ExitNotConfigured,
		ExitNotFound, ExitPermissionDenied, ExitConflict, ExitInvalidArgument}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		seen[c] = true
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"server not running", client.ErrServerNotRunning, ExitServerNotRunning},
		{"wrapped server not running", errors.Join(client.ErrServerNotRunning, errors.New("dial")), ExitServerNotRunning},
		{"server unhealthy", client.ErrServerUnhealthy, ExitServerNotRunning},
		{"no family", identity.ErrNoFamily, ExitNotConfigured},
		{"bad config", fmt.Errorf("%w: bad port", errNotConfigured), ExitNotConfigured},
		{"task not found", domain.NewTaskNotFoundError("dependent", "tsk_1"), ExitNotFound},
		{"dependency not found", domain.NewDependencyNotFoundError("dep_1"), ExitNotFound},
		{"forbidden", domain.NewForbiddenError("no"), ExitPermissionDenied},
		{"unauthorized", domain.NewUnauthorizedError(), ExitPermissionDenied},
		{"cycle", domain.NewCycleDetectedError("a", "b"), ExitConflict},
		{"duplicate", domain.NewDependencyExistsError("a", "b"), ExitConflict},
		{"self dependency", domain.NewSelfDependencyError("a"), ExitInvalidArgument},
		{"validation", domain.NewValidationError([]string{"name is required"}), ExitInvalidArgument},
		{"unavailable", domain.NewUnavailableError(errors.New("db down")), ExitServerNotRunning},
		{"internal", domain.NewInternalError(errors.New("boom")), ExitGeneralError},
		{"generic", errors.New("something"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.expected {
				t.Errorf("mapErrorToExitCode() = %d, expected %d", got, tt.expected)
			}
		})
	}
}
