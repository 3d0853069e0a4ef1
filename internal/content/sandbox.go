// Package content manages the markdown documents of a content tree on disk.
//
// Every caller-supplied path goes through a Sandbox before any filesystem
// access. The Sandbox resolves the path against a fixed root and rejects
// anything that could land outside of it:
//   - empty paths, absolute paths and volume names
//   - ".." segments and hidden segments (".git", ".env", ...)
//   - paths whose symlink-resolved form is not a strict descendant of the root
//
// Store performs single-document mutations on top of the Sandbox and Indexer
// enumerates the documents of the tree.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Mode selects the existence check Sandbox.Resolve performs.
type Mode int

const (
	// MustExist requires the target to exist. Used by read, delete and rename source.
	MustExist Mode = iota
	// MayNotExist performs no existence check. Used by create, write and rename destination.
	MayNotExist
	// ParentMustExist requires the target's parent directory to exist. Used by
	// directory cleanup.
	ParentMustExist
)

func (m Mode) String() string {
	switch m {
	case MustExist:
		return "MustExist"
	case MayNotExist:
		return "MayNotExist"
	case ParentMustExist:
		return "ParentMustExist"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// PathError describes why a path was refused.
//
// Err is ErrInvalidPath for sandbox violations and ErrNotFound for existence
// check failures, so callers can tell them apart with errors.Is.
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%q: %s", e.Path, e.Reason)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func invalidPath(path, reason string) error {
	return &PathError{Path: path, Reason: reason, Err: ErrInvalidPath}
}

func notFound(path string) error {
	return &PathError{Path: path, Reason: "not found", Err: ErrNotFound}
}

// Sandbox resolves relative paths against a content root.
//
// It is immutable after construction and safe for concurrent use. Nothing is
// cached between calls: each Resolve re-checks the filesystem.
type Sandbox struct {
	root string // absolute, symlinks resolved
	ext  string // document extension, including the dot
}

// NewSandbox creates a Sandbox rooted at root, which must be an existing
// directory. ext is the only extension accepted by ResolveDocument.
func NewSandbox(root, ext string) (*Sandbox, error) {
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return nil, fmt.Errorf("invalid document extension %q", ext)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content root: %w", err)
	}
	dir, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content root: %w", err)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat content root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", dir)
	}
	return &Sandbox{root: dir, ext: ext}, nil
}

// Root returns the absolute content root.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve validates rel and returns the absolute path it designates.
//
// The returned path is lexical (rooted at Root, symlinks not expanded) so that
// removing or renaming it acts on the entry itself.
func (s *Sandbox) Resolve(rel string, mode Mode) (string, error) {
	clean, err := cleanRel(rel)
	if err != nil {
		return "", err
	}
	abs := filepath.Join(s.root, filepath.FromSlash(clean))
	resolved, exists, err := evalExisting(abs)
	if err != nil {
		if errors.Is(err, syscall.ENOTDIR) {
			return "", invalidPath(rel, "parent is not a directory")
		}
		return "", invalidPath(rel, "cannot be resolved")
	}
	if !s.isDescendant(resolved) {
		return "", invalidPath(rel, "escapes the content root")
	}
	switch mode {
	case MustExist:
		if !exists {
			return "", notFound(rel)
		}
	case ParentMustExist:
		fi, err := os.Stat(filepath.Dir(abs))
		if err != nil || !fi.IsDir() {
			return "", notFound(rel)
		}
	case MayNotExist:
	default:
		return "", fmt.Errorf("unknown mode %s", mode)
	}
	return abs, nil
}

// ResolveDocument is Resolve plus the document extension allowlist.
func (s *Sandbox) ResolveDocument(rel string, mode Mode) (string, error) {
	if !strings.EqualFold(filepath.Ext(rel), s.ext) {
		return "", invalidPath(rel, "only "+s.ext+" documents are allowed")
	}
	return s.Resolve(rel, mode)
}

// Rel converts an absolute path under Root back to a slash-separated relative path.
func (s *Sandbox) Rel(abs string) string {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}

func (s *Sandbox) isDescendant(p string) bool {
	rel, err := filepath.Rel(s.root, p)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// cleanRel validates the lexical form of rel and returns it slash-cleaned.
func cleanRel(rel string) (string, error) {
	switch {
	case rel == "":
		return "", invalidPath(rel, "empty path")
	case strings.ContainsRune(rel, 0):
		return "", invalidPath(rel, "contains a NUL byte")
	case strings.HasPrefix(rel, "/"), strings.HasPrefix(rel, `\`), filepath.IsAbs(rel), filepath.VolumeName(rel) != "":
		return "", invalidPath(rel, "absolute paths are not allowed")
	}
	var segs []string
	for seg := range strings.FieldsFuncSeq(rel, func(r rune) bool { return r == '/' || r == '\\' }) {
		switch {
		case seg == ".":
			continue
		case seg == "..":
			return "", invalidPath(rel, "parent directory segments are not allowed")
		case strings.HasPrefix(seg, "."):
			return "", invalidPath(rel, "hidden segments are not allowed")
		}
		segs = append(segs, seg)
	}
	if len(segs) == 0 {
		return "", invalidPath(rel, "designates the content root")
	}
	return strings.Join(segs, "/"), nil
}

// evalExisting resolves symlinks in the deepest existing ancestor of p and
// re-appends the missing tail. exists reports whether p itself exists.
func evalExisting(p string) (resolved string, exists bool, err error) {
	var tail []string
	cur := p
	for {
		if _, err := os.Lstat(cur); err == nil {
			break
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false, err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", false, fs.ErrNotExist
		}
		tail = append(tail, filepath.Base(cur))
		cur = parent
	}
	resolved, err = filepath.EvalSymlinks(cur)
	if err != nil {
		return "", false, err
	}
	for i := len(tail) - 1; i >= 0; i-- {
		resolved = filepath.Join(resolved, tail[i])
	}
	return resolved, len(tail) == 0, nil
}
