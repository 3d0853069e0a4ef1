// Implements single-document create, read, write, rename and delete.

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// tmpSuffix is appended to a document path to build its temporary sibling
// during Write.
const tmpSuffix = ".tmp"

// Store performs document mutations inside a Sandbox.
//
// Writes go to a sibling temporary file that is then renamed over the target,
// so a reader sees either the previous or the new content. There is no
// locking beyond what the OS gives for rename: concurrent writers to the same
// path race and the last rename wins.
type Store struct {
	sandbox  *Sandbox
	maxBytes int64
}

// NewStore returns a Store. maxBytes caps document size; 0 disables the cap.
func NewStore(sandbox *Sandbox, maxBytes int64) *Store {
	return &Store{sandbox: sandbox, maxBytes: maxBytes}
}

// Sandbox returns the Sandbox the Store resolves paths with.
func (s *Store) Sandbox() *Sandbox {
	return s.sandbox
}

// CheckSize returns a *TooLargeError when size is above the cap.
func (s *Store) CheckSize(size int64) error {
	if s.maxBytes > 0 && size > s.maxBytes {
		return &TooLargeError{Limit: s.maxBytes, Size: size}
	}
	return nil
}

// Create writes a new document. It fails with ErrAlreadyExists if the target
// exists.
//
// The existence check and the write are two steps; a concurrent Create of the
// same path between them is not detected.
func (s *Store) Create(rel string, data []byte) (int64, error) {
	abs, err := s.sandbox.ResolveDocument(rel, MayNotExist)
	if err != nil {
		return 0, err
	}
	if err := s.CheckSize(int64(len(data))); err != nil {
		return 0, err
	}
	if _, err := os.Lstat(abs); err == nil {
		return 0, alreadyExists(rel)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("failed to stat document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil { //nolint:gosec // G301: content directories are world-readable
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil { //nolint:gosec // G306: documents are world-readable
		return 0, fmt.Errorf("failed to write document: %w", err)
	}
	return int64(len(data)), nil
}

// Read returns the raw bytes of a document.
func (s *Store) Read(rel string) ([]byte, error) {
	abs, err := s.sandbox.ResolveDocument(rel, MustExist)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(rel)
		}
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return nil, invalidPath(rel, "not a regular file")
	}
	data, err := os.ReadFile(abs) //nolint:gosec // G304: abs was validated by the sandbox
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(rel)
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// Write replaces the content of a document, creating it if needed.
func (s *Store) Write(rel string, data []byte) (int64, error) {
	abs, err := s.sandbox.ResolveDocument(rel, MayNotExist)
	if err != nil {
		return 0, err
	}
	if err := s.CheckSize(int64(len(data))); err != nil {
		return 0, err
	}
	if fi, err := os.Lstat(abs); err == nil && fi.IsDir() {
		return 0, invalidPath(rel, "is a directory")
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil { //nolint:gosec // G301: content directories are world-readable
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := writeFileAtomic(abs, data); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// Delete removes a document. When cleanupEmptyParent is set and the
// document's directory is left empty, the directory is removed too and its
// relative path is returned.
//
// Directory removal is best effort: its failure does not fail the Delete.
func (s *Store) Delete(rel string, cleanupEmptyParent bool) (deletedDir string, err error) {
	abs, err := s.sandbox.ResolveDocument(rel, MustExist)
	if err != nil {
		return "", err
	}
	if fi, err := os.Lstat(abs); err == nil && fi.IsDir() {
		return "", invalidPath(rel, "is a directory")
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", notFound(rel)
		}
		return "", fmt.Errorf("failed to delete document: %w", err)
	}
	if cleanupEmptyParent {
		deletedDir = s.removeEmptyParent(rel)
	}
	return deletedDir, nil
}

// Rename moves a document. The destination must not exist. The source's old
// directory is removed when left empty, and its relative path returned.
func (s *Store) Rename(oldRel, newRel string) (deletedDir string, err error) {
	src, err := s.sandbox.ResolveDocument(oldRel, MustExist)
	if err != nil {
		return "", err
	}
	dst, err := s.sandbox.ResolveDocument(newRel, MayNotExist)
	if err != nil {
		return "", err
	}
	if src == dst {
		return "", &PathError{Path: newRel, Reason: "same as source", Err: ErrSameSource}
	}
	if fi, err := os.Lstat(src); err == nil && fi.IsDir() {
		return "", invalidPath(oldRel, "is a directory")
	}
	if _, err := os.Lstat(dst); err == nil {
		return "", alreadyExists(newRel)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to stat destination: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { //nolint:gosec // G301: content directories are world-readable
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", notFound(oldRel)
		}
		return "", fmt.Errorf("failed to rename document: %w", err)
	}
	return s.removeEmptyParent(oldRel), nil
}

// removeEmptyParent removes the directory holding rel if it is empty and is
// not the content root. It returns the removed directory relative to the
// root, or "" when nothing was removed.
func (s *Store) removeEmptyParent(rel string) string {
	abs, err := s.sandbox.Resolve(rel, ParentMustExist)
	if err != nil {
		slog.Debug("Skipping directory cleanup", "path", rel, "err", err)
		return ""
	}
	dir := filepath.Dir(abs)
	if dir == s.sandbox.Root() {
		return ""
	}
	// A symlinked directory is an entry of its parent, not a directory to
	// tidy up; os.Remove would delete the link and leave the target.
	if fi, err := os.Lstat(dir); err != nil || !fi.IsDir() {
		return ""
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 0 {
		return ""
	}
	// os.Remove refuses a directory that was repopulated since ReadDir.
	if err := os.Remove(dir); err != nil {
		slog.Debug("Failed to remove empty directory", "dir", dir, "err", err)
		return ""
	}
	return s.sandbox.Rel(dir)
}

// writeFileAtomic writes data to path+".tmp" and renames it over path. The
// temporary file is removed on every error path.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp := path + tmpSuffix
	// A leftover entry at tmp is removed rather than opened: O_EXCL refuses to
	// follow a symlink planted there.
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove stale temp file: %w", err)
	}
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // G302,G304: documents are world-readable; path was validated
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				err = errors.Join(err, rmErr)
			}
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
