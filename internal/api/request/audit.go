package request

import (
	"net/http"
	"strconv"
	"time"
)

// AuditQueryParams contains query parameters for audit log queries.
type AuditQueryParams struct {
	Action    *string
	MemberID  *string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
}

// ParseAuditQuery extracts audit query parameters from the request.
// Malformed values are reported as validation details.
func ParseAuditQuery(r *http.Request) (AuditQueryParams, []string) {
	params := AuditQueryParams{}
	var details []string
	q := r.URL.Query()

	if action := q.Get("action"); action != "" {
		params.Action = &action
	}

	if member := q.Get("member"); member != "" {
		params.MemberID = &member
	}

	if startStr := q.Get("start"); startStr != "" {
		if t, err := time.Parse(time.RFC3339, startStr); err == nil {
			params.StartTime = &t
		} else {
			details = append(details, "start must be an RFC3339 timestamp")
		}
	}

	if endStr := q.Get("end"); endStr != "" {
		if t, err := time.Parse(time.RFC3339, endStr); err == nil {
			params.EndTime = &t
		} else {
			details = append(details, "end must be an RFC3339 timestamp")
		}
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
			params.Limit = v
		} else {
			details = append(details, "limit must be a positive integer")
		}
	}

	return params, details
}
