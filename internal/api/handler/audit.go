package handler

import (
	"net/http"

	"github.com/hearthapp/hearth/internal/api/middleware"
	"github.com/hearthapp/hearth/internal/api/request"
	"github.com/hearthapp/hearth/internal/api/response"
	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/service"
)

// AuditHandler handles audit log operations.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// QueryAuditLog handles GET /v1/audit.
func (h *AuditHandler) QueryAuditLog(w http.ResponseWriter, r *http.Request) {
	params, details := request.ParseAuditQuery(r)
	if len(details) > 0 {
		response.Error(w, domain.NewValidationError(details))
		return
	}

	entries, err := h.audit.Query(r.Context(), middleware.GetScope(r.Context()), service.QueryInput{
		Action:    params.Action,
		MemberID:  params.MemberID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Limit:     params.Limit,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	if entries == nil {
		entries = []*domain.AuditEntry{}
	}

	response.OK(w, entries)
}
