// Package api exposes the roster engine, exports and route data over a
// small JSON API, mirroring the surfaces of the original web UI.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ubck/survey-cli/internal/config"
	"github.com/ubck/survey-cli/internal/export"
	"github.com/ubck/survey-cli/internal/notes"
	"github.com/ubck/survey-cli/internal/store"
)

// Server holds the dependencies of the JSON API.
type Server struct {
	store     store.Store
	cfg       *config.Config
	formatter *notes.Formatter // nil when no API key is configured
	labels    export.Labels
}

// NewServer wires a Server. formatter may be nil; the notes endpoint then
// reports the feature as unconfigured.
func NewServer(st store.Store, cfg *config.Config, formatter *notes.Formatter) *Server {
	return &Server{
		store:     st,
		cfg:       cfg,
		formatter: formatter,
		labels:    export.DefaultLabels(),
	}
}

// Router builds the chi handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/days", func(r chi.Router) {
		r.Get("/", s.handleListDays)
		r.Route("/{day}", func(r chi.Router) {
			r.Get("/", s.handleGetDay)
			r.Put("/", s.handlePutDay)
			r.Delete("/", s.handleDeleteDay)
			r.Post("/build", s.handleBuild)
			r.Get("/warnings", s.handleWarnings)
			r.Get("/export", s.handleExport)
		})
	})

	r.Post("/notes/format", s.handleFormatNotes)
	r.Get("/routes/{area}", s.handleRoutes)

	return r
}

// requestLogger logs one line per request with the zap global logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
