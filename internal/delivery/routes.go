package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the assistant routes and the JSON 404/405 fallbacks.
func NewRouter(h *AssistantHandler, allowedOrigins []string, log *logger.ZapLogger) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		RequestID,
		AccessLog(log),
		cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
		}),
	)
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Group(func(api chi.Router) {
		api.Use(RecoverJSON(log))

		api.Get("/", h.Index)
		api.Post("/speech-to-text", h.SpeechToText)
		api.Post("/process-message", h.ProcessMessage)
	})

	return r
}
