package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/household-budget/pkg/constants"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// withRequestID tags every request with an id, reusing one supplied by the
// client, and echoes it in the response.
func withRequestID(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(constants.RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(constants.RequestIDHeader, id)

		logger.Debug("request received",
			zap.String("op", "server.withRequestID"),
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}
