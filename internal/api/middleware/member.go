package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hearthapp/hearth/internal/api/response"
	"github.com/hearthapp/hearth/internal/domain"
)

type contextKey string

const (
	// ScopeKey is the context key for the caller's scope.
	ScopeKey contextKey = "scope"

	// MemberHeader carries the calling member's id.
	MemberHeader = "X-Hearth-Member"
	// FamilyHeader carries the calling member's family id.
	FamilyHeader = "X-Hearth-Family"
	// RoleHeader carries the calling member's role (PARENT or CHILD).
	RoleHeader = "X-Hearth-Role"
)

// Member resolves the caller's identity from the request headers and adds
// it to the context. Requests without a member or family are rejected.
func Member(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := domain.Scope{
			MemberID: strings.TrimSpace(r.Header.Get(MemberHeader)),
			FamilyID: strings.TrimSpace(r.Header.Get(FamilyHeader)),
			Role:     domain.Role(strings.ToUpper(strings.TrimSpace(r.Header.Get(RoleHeader)))),
		}
		if scope.MemberID == "" || scope.FamilyID == "" {
			response.Error(w, domain.NewUnauthorizedError())
			return
		}
		if scope.Role == "" {
			scope.Role = domain.RoleChild
		}

		ctx := context.WithValue(r.Context(), ScopeKey, scope)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireParent rejects callers whose role is not PARENT.
func RequireParent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetScope(r.Context()).IsParent() {
			response.Error(w, domain.NewForbiddenError("Only parents can manage tasks"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetScope retrieves the caller's scope from context.
func GetScope(ctx context.Context) domain.Scope {
	if scope, ok := ctx.Value(ScopeKey).(domain.Scope); ok {
		return scope
	}
	return domain.Scope{}
}
