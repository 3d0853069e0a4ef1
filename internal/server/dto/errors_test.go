package dto

import (
	"errors"
	"net/http"
	"testing"
)

func TestAPIError(t *testing.T) {
	t.Run("NewAPIError", func(t *testing.T) {
		err := NewAPIError(http.StatusNotFound, ErrorCodeNotFound, "resource not found")
		if err.StatusCode() != http.StatusNotFound {
			t.Errorf("Expected status code %d, got %d", http.StatusNotFound, err.StatusCode())
		}
		if err.Code() != ErrorCodeNotFound {
			t.Errorf("Expected code %s, got %s", ErrorCodeNotFound, err.Code())
		}
		if err.Error() != "resource not found" {
			t.Errorf("Expected message 'resource not found', got '%s'", err.Error())
		}
		if err.Details() == nil {
			t.Error("Expected Details() to return non-nil map")
		}
	})
	t.Run("WithDetails", func(t *testing.T) {
		err := (&APIError{statusCode: http.StatusBadRequest, code: ErrorCodeValidationFailed, message: "test"}).
			WithDetails(map[string]any{"field": "path", "reason": "empty"})
		if err.Details()["field"] != "path" || err.Details()["reason"] != "empty" {
			t.Errorf("Details() = %v", err.Details())
		}
	})
	t.Run("WithDetail", func(t *testing.T) {
		err := (&APIError{statusCode: http.StatusBadRequest, code: ErrorCodeValidationFailed, message: "test"}).
			WithDetail("key", "value")
		if err.Details()["key"] != "value" {
			t.Error("Expected WithDetail to initialize nil map")
		}
	})
	t.Run("Wrap", func(t *testing.T) {
		origErr := errors.New("original error")
		err := NewAPIError(http.StatusInternalServerError, ErrorCodeInternal, "wrapped error").Wrap(origErr)
		if !errors.Is(err, origErr) {
			t.Error("Expected errors.Is to find the original error")
		}
		if err.Error() != "wrapped error: original error" {
			t.Errorf("Expected error message 'wrapped error: original error', got '%s'", err.Error())
		}
	})
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *APIError
		status int
		code   ErrorCode
	}{
		{"InvalidPath", InvalidPath("../x.md", "parent directory segments are not allowed"), http.StatusForbidden, ErrorCodeInvalidPath},
		{"NotFound", NotFound("document"), http.StatusNotFound, ErrorCodeNotFound},
		{"AlreadyExists", AlreadyExists("document"), http.StatusConflict, ErrorCodeAlreadyExists},
		{"SameSource", SameSource(), http.StatusBadRequest, ErrorCodeSameSource},
		{"PayloadTooLarge", PayloadTooLarge(10, 11), http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge},
		{"CompileError", CompileError("bad", 2, 0, "x"), http.StatusUnprocessableEntity, ErrorCodeCompileError},
		{"BadRequest", BadRequest("bad"), http.StatusBadRequest, ErrorCodeValidationFailed},
		{"MissingField", MissingField("path"), http.StatusBadRequest, ErrorCodeMissingField},
		{"Forbidden", Forbidden("no"), http.StatusForbidden, ErrorCodeForbidden},
		{"RateLimitExceeded", RateLimitExceeded(3), http.StatusTooManyRequests, ErrorCodeRateLimited},
		{"Internal", Internal("oops"), http.StatusInternalServerError, ErrorCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode() != tt.status {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.status)
			}
			if tt.err.Code() != tt.code {
				t.Errorf("Code() = %s, want %s", tt.err.Code(), tt.code)
			}
			var ews ErrorWithStatus
			if !errors.As(error(tt.err), &ews) {
				t.Error("APIError should implement ErrorWithStatus")
			}
		})
	}
}

func TestErrorDetails(t *testing.T) {
	d := PayloadTooLarge(10, 11).Details()
	if d["limit"] != int64(10) || d["size"] != int64(11) {
		t.Errorf("PayloadTooLarge details = %v", d)
	}
	if _, ok := PayloadTooLarge(10, 0).Details()["size"]; ok {
		t.Error("unknown size should be omitted")
	}
	d = CompileError("bad", 3, 5, "tags: [x").Details()
	if d["line"] != 3 || d["column"] != 5 || d["snippet"] != "tags: [x" {
		t.Errorf("CompileError details = %v", d)
	}
	if RateLimitExceeded(7).Details()["retry_after"] != 7 {
		t.Error("RateLimitExceeded should carry retry_after")
	}
	if InvalidPath("a/../b.md", "x").Details()["path"] != "a/../b.md" {
		t.Error("InvalidPath should carry the path")
	}
}

func TestRequestValidate(t *testing.T) {
	s := "x"
	yes := true
	tests := []struct {
		name string
		req  Validatable
		ok   bool
	}{
		{"read ok", &ReadDocRequest{Path: "a/page.md"}, true},
		{"read missing", &ReadDocRequest{}, false},
		{"create ok", &CreateDocRequest{Path: "a/page.md"}, true},
		{"create missing", &CreateDocRequest{Content: &s}, false},
		{"write ok", &WriteDocRequest{Path: "a/page.md", Metadata: &s, Content: &s}, true},
		{"write missing metadata", &WriteDocRequest{Path: "a/page.md", Content: &s}, false},
		{"write missing content", &WriteDocRequest{Path: "a/page.md", Metadata: &s}, false},
		{"delete ok", &DeleteDocRequest{Path: "a/page.md", CleanupEmptyParent: &yes}, true},
		{"delete missing flag", &DeleteDocRequest{Path: "a/page.md"}, false},
		{"rename ok", &RenameDocRequest{OldPath: "a", NewPath: "b"}, true},
		{"rename missing new", &RenameDocRequest{OldPath: "a"}, false},
		{"compile ok", &CompileRequest{Source: &s}, true},
		{"compile empty source ok", &CompileRequest{Source: new(string)}, true},
		{"compile missing", &CompileRequest{}, false},
		{"list", &ListDocsRequest{}, true},
		{"health", &HealthRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if !tt.ok {
				var apiErr *APIError
				if !errors.As(err, &apiErr) || apiErr.Code() != ErrorCodeMissingField {
					t.Errorf("Validate() = %v, want MISSING_FIELD", err)
				}
			}
		})
	}
}
