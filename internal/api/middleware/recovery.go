package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/api/response"
	"github.com/hearthapp/hearth/internal/domain"
)

// Recovery catches panics and returns a 500 error.
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						zap.Any("panic", err),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					response.Error(w, domain.NewInternalError(nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
