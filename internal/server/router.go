// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/maruel/mdgate/internal/server/devguard"
	"github.com/maruel/mdgate/internal/server/dto"
	"github.com/maruel/mdgate/internal/server/handlers"
	"github.com/maruel/mdgate/internal/server/ipgeo"
	"github.com/maruel/mdgate/internal/server/ratelimit"
)

// Config holds the request-path settings of the router.
type Config struct {
	Guard               *devguard.Guard
	Limits              *ratelimit.Config // nil disables rate limiting
	MaxRequestBodyBytes int64             // 0 means unlimited
	TrustProxy          bool
	Version             string
	IPGeo               *ipgeo.Checker // optional
}

// NewRouter creates and configures the HTTP router.
//
// /api/health is always served. Every /api/dev/ route goes through the
// development guard first and answers 403 outside of development.
func NewRouter(svc *handlers.Services, cfg *Config) http.Handler {
	mux := &http.ServeMux{}

	hh := handlers.NewHealthHandler(cfg.Version, cfg.Guard, svc.Compile.Cache())
	dh := handlers.NewDocsHandler(svc)
	ch := handlers.NewCompileHandler(svc)

	// Health check
	mux.Handle("GET /api/health", Wrap(hh.Health, cfg))

	// Documents
	mux.Handle("GET /api/dev/docs", WrapDev(dh.List, cfg))
	mux.Handle("GET /api/dev/docs/read", WrapDev(dh.Read, cfg))
	mux.Handle("POST /api/dev/docs/create", WrapDev(dh.Create, cfg))
	mux.Handle("POST /api/dev/docs/write", WrapDev(dh.Write, cfg))
	mux.Handle("POST /api/dev/docs/delete", WrapDev(dh.Delete, cfg))
	mux.Handle("POST /api/dev/docs/rename", WrapDev(dh.Rename, cfg))

	// Compile preview
	mux.Handle("POST /api/dev/compile", WrapDev(ch.Preview, cfg))

	// Unknown API routes get a JSON 404 instead of the mux's plain text.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		apiErr := dto.NotFound("route " + r.Method + " " + r.URL.Path)
		writeErrorResponseWithCode(w, apiErr.StatusCode(), apiErr.Code(), apiErr.Error(), apiErr.Details())
	})

	return requestLogger(cfg, mux)
}
