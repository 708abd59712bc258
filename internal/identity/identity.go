// Package identity resolves the family member the Hearth CLI acts as. The
// identity is sent on every request as the X-Hearth-Member, X-Hearth-Family
// and X-Hearth-Role headers and ends up in audit entries.
package identity

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/hearthapp/hearth/internal/config"
	"github.com/hearthapp/hearth/internal/domain"
)

// FallbackUser is used when no member is configured and the OS user cannot
// be determined.
const FallbackUser = "unknown"

// ErrNoFamily is returned when no family is configured.
var ErrNoFamily = errors.New("no family configured: set [identity] family in ~/.hearth/config.toml or HEARTH_FAMILY")

// Resolve builds the caller's scope from configuration. The member defaults
// to the OS user and the role to PARENT.
func Resolve(cfg config.IdentityConfig) (domain.Scope, error) {
	return ResolveWithUser(cfg, getUser())
}

// ResolveWithUser is Resolve with an explicit fallback user name. It is
// primarily intended for testing.
func ResolveWithUser(cfg config.IdentityConfig, osUser string) (domain.Scope, error) {
	member := strings.TrimSpace(cfg.Member)
	if member == "" {
		member = osUser
	}
	if member == "" {
		member = FallbackUser
	}

	family := strings.TrimSpace(cfg.Family)
	if family == "" {
		return domain.Scope{}, ErrNoFamily
	}

	role := domain.Role(strings.ToUpper(strings.TrimSpace(cfg.Role)))
	switch role {
	case "":
		role = domain.RoleParent
	case domain.RoleParent, domain.RoleChild:
	default:
		return domain.Scope{}, fmt.Errorf("invalid role %q: must be PARENT or CHILD", cfg.Role)
	}

	return domain.Scope{FamilyID: family, MemberID: member, Role: role}, nil
}

// getUser returns the current user's username.
// It first checks the USER environment variable, then falls back to user.Current().
func getUser() string {
	if usr := os.Getenv("USER"); usr != "" {
		return usr
	}

	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}

	return ""
}
