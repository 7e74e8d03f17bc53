// AngelaMos | 2026
// logger.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
)

type logEntryKey struct{}

// logEntry collects request attributes that are only known further down
// the chain, after the logger has handed the request on.
type logEntry struct {
	userID string
}

func withLogEntry(ctx context.Context) (context.Context, *logEntry) {
	entry := &logEntry{}
	return context.WithValue(ctx, logEntryKey{}, entry), entry
}

func recordIdentity(ctx context.Context, claims *AccessTokenClaims) {
	if entry, ok := ctx.Value(logEntryKey{}).(*logEntry); ok {
		entry.userID = claims.UserID
	}
}

func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx, entry := withLogEntry(r.Context())
			r = r.WithContext(ctx)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", core.RequestIDFromContext(r.Context()),
			}
			if entry.userID != "" {
				attrs = append(attrs, "user_id", entry.userID)
			}
			if traceID := core.TraceIDFromContext(r.Context()); traceID != "" {
				attrs = append(attrs, "trace_id", traceID)
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.ErrorContext(r.Context(), "request", attrs...)
			case status >= http.StatusBadRequest:
				logger.WarnContext(r.Context(), "request", attrs...)
			default:
				logger.InfoContext(r.Context(), "request", attrs...)
			}
		})
	}
}
