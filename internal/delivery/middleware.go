package delivery

import (
	"context"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID keeps an incoming X-Request-ID or assigns a new one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestFields starts the structured log fields for r.
func requestFields(r *http.Request) map[string]any {
	return map[string]any{"request_id": requestIDFrom(r.Context())}
}

func AccessLog(log *logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := requestFields(r)
			fields["path"] = r.URL.Path
			fields["status"] = ww.Status()
			fields["bytes"] = ww.BytesWritten()
			fields["duration_ms"] = time.Since(start).Milliseconds()

			log.Log(logger.LogEntry{
				Level:   "info",
				Message: "request served",
				Service: "http",
				Method:  r.Method,
				Fields:  fields,
			})
		})
	}
}
