package handlers

import (
	"context"

	"github.com/maruel/mdgate/internal/compile"
	"github.com/maruel/mdgate/internal/server/devguard"
	"github.com/maruel/mdgate/internal/server/dto"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	version string
	guard   *devguard.Guard
	cache   *compile.Cache
}

// NewHealthHandler creates a new health handler. cache may be nil.
func NewHealthHandler(version string, guard *devguard.Guard, cache *compile.Cache) *HealthHandler {
	return &HealthHandler{version: version, guard: guard, cache: cache}
}

// Health handles health check requests.
func (h *HealthHandler) Health(ctx context.Context, _ *dto.HealthRequest) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{
		Status:       "ok",
		Version:      h.version,
		Environment:  h.guard.Environment(),
		DevMode:      h.guard.Enabled(),
		CacheEntries: h.cache.Len(),
	}, nil
}
