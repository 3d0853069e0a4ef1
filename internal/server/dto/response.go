package dto

// HealthResponse is the response to a health check.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Environment  string `json:"environment"`
	DevMode      bool   `json:"dev_mode"`
	CacheEntries int    `json:"cache_entries"` // compiled previews held, expired ones included
}

// DocRecord describes one document of the content tree.
type DocRecord struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

// ListDocsResponse is the response to listing documents.
type ListDocsResponse struct {
	Docs []DocRecord `json:"docs"`
}

// ReadDocResponse is a document split at its front matter.
type ReadDocResponse struct {
	Path        string         `json:"path"`
	Metadata    string         `json:"metadata"`
	FrontMatter map[string]any `json:"frontmatter,omitempty"`
	Content     string         `json:"content"`
}

// WriteDocResponse is the response to a create or write.
type WriteDocResponse struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// DeleteDocResponse is the response to a delete. DeletedDir is null when no
// directory was removed.
type DeleteDocResponse struct {
	Path       string  `json:"path"`
	DeletedDir *string `json:"deleted_dir"`
}

// RenameDocResponse is the response to a rename. DeletedDir is null when the
// source directory was kept.
type RenameDocResponse struct {
	OldPath    string  `json:"old_path"`
	NewPath    string  `json:"new_path"`
	DeletedDir *string `json:"deleted_dir"`
}

// CompileResponse is the compiled preview of a document.
type CompileResponse struct {
	Output   string `json:"output"`
	CacheHit bool   `json:"cache_hit"`
}
