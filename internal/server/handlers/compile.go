package handlers

import (
	"context"

	"github.com/maruel/mdgate/internal/compile"
	"github.com/maruel/mdgate/internal/content"
	"github.com/maruel/mdgate/internal/server/dto"
)

// CompileHandler handles compile preview requests.
type CompileHandler struct {
	svc   *compile.Service
	store *content.Store
}

// NewCompileHandler creates a new compile handler. Sources are held to the
// same size cap as stored documents.
func NewCompileHandler(svc *Services) *CompileHandler {
	return &CompileHandler{svc: svc.Compile, store: svc.Store}
}

// Preview compiles a document source, using the cache when possible.
func (h *CompileHandler) Preview(ctx context.Context, req *dto.CompileRequest) (*dto.CompileResponse, error) {
	src := []byte(*req.Source)
	if err := h.store.CheckSize(int64(len(src))); err != nil {
		return nil, toAPIError(err)
	}
	res, err := h.svc.Preview(src)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &dto.CompileResponse{Output: res.Output, CacheHit: res.CacheHit}, nil
}
