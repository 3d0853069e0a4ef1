// Maps domain errors to API errors.

package handlers

import (
	"errors"
	"strconv"

	"github.com/maruel/mdgate/internal/compile"
	"github.com/maruel/mdgate/internal/content"
	"github.com/maruel/mdgate/internal/server/dto"
)

// toAPIError converts an error from the content or compile packages into a
// *dto.APIError. Unknown errors become INTERNAL_ERROR.
func toAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *dto.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var tooLarge *content.TooLargeError
	if errors.As(err, &tooLarge) {
		return dto.PayloadTooLarge(tooLarge.Limit, tooLarge.Size)
	}
	var compileErr *compile.Error
	if errors.As(err, &compileErr) {
		return dto.CompileError(compileErr.Message, compileErr.Line, compileErr.Column, compileErr.Snippet)
	}
	var pathErr *content.PathError
	p, reason := "", err.Error()
	if errors.As(err, &pathErr) {
		p, reason = pathErr.Path, pathErr.Reason
	}
	switch {
	case errors.Is(err, content.ErrInvalidPath):
		return dto.InvalidPath(p, reason)
	case errors.Is(err, content.ErrNotFound):
		return dto.NotFound("document " + strconv.Quote(p)).WithDetail("path", p)
	case errors.Is(err, content.ErrAlreadyExists):
		return dto.AlreadyExists("document " + strconv.Quote(p)).WithDetail("path", p)
	case errors.Is(err, content.ErrSameSource):
		return dto.SameSource().WithDetail("path", p)
	default:
		return dto.InternalWithError("internal error", err)
	}
}
