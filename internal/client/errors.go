package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"

	"github.com/hearthapp/hearth/internal/domain"
)

// Client-specific errors.
var (
	// ErrServerNotRunning indicates the server is not reachable.
	ErrServerNotRunning = errors.New("server is not running or unreachable")
	// ErrServerUnhealthy indicates the health check failed.
	ErrServerUnhealthy = errors.New("server health check failed")
)

// APIError represents an error response from the API.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// apiErrorResponse wraps the error in the API response format.
type apiErrorResponse struct {
	Error APIError `json:"error"`
}

// parseErrorResponse parses an error response from the API into a
// *domain.DomainError whose kind follows the HTTP status.
func parseErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Code == "" {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(body))
	}

	return &domain.DomainError{
		Kind:    kindForStatus(resp.StatusCode),
		Code:    domain.ErrorCode(apiErr.Error.Code),
		Message: apiErr.Error.Message,
		Context: apiErr.Error.Context,
	}
}

func kindForStatus(status int) domain.ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return domain.KindInvalidArgument
	case http.StatusUnauthorized:
		return domain.KindUnauthorized
	case http.StatusForbidden:
		return domain.KindForbidden
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusConflict:
		return domain.KindConflict
	case http.StatusServiceUnavailable:
		return domain.KindUnavailable
	default:
		return domain.KindInternal
	}
}

// extractStringSlice extracts a string slice from a context map.
func extractStringSlice(ctx map[string]interface{}, key string) []string {
	val, ok := ctx[key]
	if !ok {
		return nil
	}

	if strs, ok := val.([]string); ok {
		return strs
	}

	// JSON unmarshals arrays as []interface{}
	slice, ok := val.([]interface{})
	if !ok {
		return nil
	}

	result := make([]string, 0, len(slice))
	for _, v := range slice {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// Details returns the validation details carried by err, if any.
func Details(err error) []string {
	de, ok := domain.AsDomainError(err)
	if !ok {
		return nil
	}
	return extractStringSlice(de.Context, "details")
}

// wrapConnectionError marks connection failures with ErrServerNotRunning.
func wrapConnectionError(err error) error {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return errors.Join(ErrServerNotRunning, err)
	}
	return err
}
