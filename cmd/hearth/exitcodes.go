package main

import (
	"errors"

	"github.com/hearthapp/hearth/internal/client"
	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/identity"
)

// Exit codes for the CLI
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitServerNotRunning = 2
	ExitNotConfigured    = 3
	ExitNotFound         = 4
	ExitPermissionDenied = 5
	ExitConflict         = 6
	ExitInvalidArgument  = 7
)

// errNotConfigured marks configuration failures on the client side.
var errNotConfigured = errors.New("hearth is not configured")

// mapErrorToExitCode maps errors to appropriate exit codes.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, client.ErrServerNotRunning) || errors.Is(err, client.ErrServerUnhealthy) {
		return ExitServerNotRunning
	}
	if errors.Is(err, identity.ErrNoFamily) || errors.Is(err, errNotConfigured) {
		return ExitNotConfigured
	}

	de, ok := domain.AsDomainError(err)
	if !ok {
		return ExitGeneralError
	}
	switch de.Kind {
	case domain.KindNotFound:
		return ExitNotFound
	case domain.KindForbidden, domain.KindUnauthorized:
		return ExitPermissionDenied
	case domain.KindConflict:
		return ExitConflict
	case domain.KindInvalidArgument:
		return ExitInvalidArgument
	case domain.KindUnavailable:
		return ExitServerNotRunning
	default:
		return ExitGeneralError
	}
}
