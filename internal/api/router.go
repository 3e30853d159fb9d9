package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aemckenna/rig-calc/internal/panel"
)

// healthCheckTimeout bounds the component checks behind /health.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)
	r.Use(s.metricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Handle("/metrics", s.metrics.handler())

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleListCatalog)
			r.Get("/{id}", s.handleGetFixture)
		})

		r.Route("/rig", func(r chi.Router) {
			r.Get("/", s.handleGetRig)
			r.Delete("/", s.handleClearRig)
			r.Get("/summary", s.handleSummary)
			r.Get("/power", s.handlePower)
			r.Post("/demo", s.handleLoadDemo)
			r.Get("/history", s.handleListHistory)

			r.Route("/lines", func(r chi.Router) {
				r.Post("/", s.handleAddLine)
				r.Get("/{id}", s.handleGetLine)
				r.Delete("/{id}", s.handleDeleteLine)
			})

			r.Route("/universes", func(r chi.Router) {
				r.Get("/", s.handleListUniverses)
				r.Get("/{universe}/grid", s.handleGrid)
				r.Get("/{universe}/next-address", s.handleNextAddress)
			})
		})

		r.Get(s.wsPath(), s.handleWebSocket)
	})

	// Web panel, with SPA fallback for everything else.
	r.Handle("/*", panel.Handler(s.panelDir))

	return r
}

func (s *Server) wsPath() string {
	if s.wsCfg.Path == "" {
		return "/ws"
	}
	return s.wsCfg.Path
}

// componentStatus values reported by /health.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDisabled = "disabled"
	statusError    = "error"
)

// handleHealth returns the server health status and the state of each
// optional component. A failing database makes the response 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	components := map[string]string{
		"database": checkComponent(ctx, s.database),
		"mqtt":     checkComponent(ctx, s.mqtt),
		"influxdb": checkComponent(ctx, s.influx),
	}

	status, code := statusOK, http.StatusOK
	for name, state := range components {
		if state != statusError {
			continue
		}
		status = statusDegraded
		if name == "database" {
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]any{
		"status":         status,
		"version":        s.version,
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
		"lines":          len(s.session.Lines()),
		"components":     components,
	})
}

func checkComponent(ctx context.Context, c HealthChecker) string {
	if c == nil {
		return statusDisabled
	}
	if err := c.HealthCheck(ctx); err != nil {
		return statusError
	}
	return statusOK
}
