// Handles document listing and single-document mutations.

package handlers

import (
	"context"
	"log/slog"

	"github.com/maruel/mdgate/internal/content"
	"github.com/maruel/mdgate/internal/server/dto"
)

// DocsHandler handles document requests.
type DocsHandler struct {
	store *content.Store
	index *content.Indexer
}

// NewDocsHandler creates a new documents handler.
func NewDocsHandler(svc *Services) *DocsHandler {
	return &DocsHandler{store: svc.Store, index: svc.Index}
}

// List returns every document of the content tree.
func (h *DocsHandler) List(ctx context.Context, _ *dto.ListDocsRequest) (*dto.ListDocsResponse, error) {
	recs := h.index.List()
	docs := make([]dto.DocRecord, 0, len(recs))
	for _, r := range recs {
		docs = append(docs, dto.DocRecord{Path: r.Path, Title: r.Title, Category: r.Category, URL: r.URL})
	}
	return &dto.ListDocsResponse{Docs: docs}, nil
}

// Read returns a document split at its front matter.
func (h *DocsHandler) Read(ctx context.Context, req *dto.ReadDocRequest) (*dto.ReadDocResponse, error) {
	data, err := h.store.Read(req.Path)
	if err != nil {
		return nil, toAPIError(err)
	}
	meta, body, ok := content.SplitPreamble(data)
	resp := &dto.ReadDocResponse{Path: req.Path, Metadata: meta, Content: body}
	if ok {
		// A broken preamble is still returned raw so the editor can fix it.
		fm, err := content.ParseFrontMatter(meta)
		if err != nil {
			slog.DebugContext(ctx, "Invalid front matter", "path", req.Path, "err", err)
		}
		resp.FrontMatter = fm
	}
	return resp, nil
}

// Create creates a new document. Without content, a template titled after the
// document's directory is written.
func (h *DocsHandler) Create(ctx context.Context, req *dto.CreateDocRequest) (*dto.WriteDocResponse, error) {
	var data []byte
	if req.Content != nil {
		data = []byte(*req.Content)
	} else {
		data = content.NewDocument(content.TitleFor(req.Path))
	}
	n, err := h.store.Create(req.Path, data)
	if err != nil {
		return nil, toAPIError(err)
	}
	slog.InfoContext(ctx, "Created document", "path", req.Path, "size", n)
	return &dto.WriteDocResponse{Path: req.Path, Size: n}, nil
}

// Write replaces a document with metadata as its front matter and content as
// its body.
func (h *DocsHandler) Write(ctx context.Context, req *dto.WriteDocRequest) (*dto.WriteDocResponse, error) {
	// The path is checked before the payload so a bad path always reports
	// INVALID_PATH.
	if _, err := h.store.Sandbox().ResolveDocument(req.Path, content.MayNotExist); err != nil {
		return nil, toAPIError(err)
	}
	if err := content.CheckFrontMatter(*req.Metadata); err != nil {
		return nil, dto.BadRequest("invalid metadata: " + err.Error()).WithDetail("field", "metadata")
	}
	n, err := h.store.Write(req.Path, content.JoinPreamble(*req.Metadata, *req.Content))
	if err != nil {
		return nil, toAPIError(err)
	}
	slog.InfoContext(ctx, "Wrote document", "path", req.Path, "size", n)
	return &dto.WriteDocResponse{Path: req.Path, Size: n}, nil
}

// Delete removes a document and optionally its emptied directory.
func (h *DocsHandler) Delete(ctx context.Context, req *dto.DeleteDocRequest) (*dto.DeleteDocResponse, error) {
	dir, err := h.store.Delete(req.Path, *req.CleanupEmptyParent)
	if err != nil {
		return nil, toAPIError(err)
	}
	slog.InfoContext(ctx, "Deleted document", "path", req.Path, "deleted_dir", dir)
	return &dto.DeleteDocResponse{Path: req.Path, DeletedDir: optional(dir)}, nil
}

// Rename moves a document. The source directory is removed when left empty.
func (h *DocsHandler) Rename(ctx context.Context, req *dto.RenameDocRequest) (*dto.RenameDocResponse, error) {
	dir, err := h.store.Rename(req.OldPath, req.NewPath)
	if err != nil {
		return nil, toAPIError(err)
	}
	slog.InfoContext(ctx, "Renamed document", "old_path", req.OldPath, "new_path", req.NewPath, "deleted_dir", dir)
	return &dto.RenameDocResponse{OldPath: req.OldPath, NewPath: req.NewPath, DeletedDir: optional(dir)}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
