package dto

// --- Health ---

// HealthRequest is a request to check server health.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}

// --- Documents ---

// ListDocsRequest is a request to list every document.
type ListDocsRequest struct{}

// Validate is a no-op for ListDocsRequest.
func (r *ListDocsRequest) Validate() error {
	return nil
}

// ReadDocRequest is a request to read one document.
type ReadDocRequest struct {
	Path string `query:"path" json:"-"`
}

// Validate validates the read document request fields.
func (r *ReadDocRequest) Validate() error {
	if r.Path == "" {
		return MissingField("path")
	}
	return nil
}

// CreateDocRequest is a request to create a document. A nil Content writes a
// template titled after the path.
type CreateDocRequest struct {
	Path    string  `json:"path"`
	Content *string `json:"content,omitempty"`
}

// Validate validates the create document request fields.
func (r *CreateDocRequest) Validate() error {
	if r.Path == "" {
		return MissingField("path")
	}
	return nil
}

// WriteDocRequest is a request to replace a document. Metadata is the raw
// front matter block without its delimiters; it may be empty.
type WriteDocRequest struct {
	Path     string  `json:"path"`
	Metadata *string `json:"metadata"`
	Content  *string `json:"content"`
}

// Validate validates the write document request fields.
func (r *WriteDocRequest) Validate() error {
	if r.Path == "" {
		return MissingField("path")
	}
	if r.Metadata == nil {
		return MissingField("metadata")
	}
	if r.Content == nil {
		return MissingField("content")
	}
	return nil
}

// DeleteDocRequest is a request to delete a document.
type DeleteDocRequest struct {
	Path               string `json:"path"`
	CleanupEmptyParent *bool  `json:"cleanup_empty_parent"`
}

// Validate validates the delete document request fields.
func (r *DeleteDocRequest) Validate() error {
	if r.Path == "" {
		return MissingField("path")
	}
	if r.CleanupEmptyParent == nil {
		return MissingField("cleanup_empty_parent")
	}
	return nil
}

// RenameDocRequest is a request to move a document.
type RenameDocRequest struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

// Validate validates the rename document request fields.
func (r *RenameDocRequest) Validate() error {
	if r.OldPath == "" {
		return MissingField("old_path")
	}
	if r.NewPath == "" {
		return MissingField("new_path")
	}
	return nil
}

// --- Compile ---

// CompileRequest is a request to compile a document source for preview.
type CompileRequest struct {
	Source *string `json:"source"`
}

// Validate validates the compile request fields.
func (r *CompileRequest) Validate() error {
	if r.Source == nil {
		return MissingField("source")
	}
	return nil
}
