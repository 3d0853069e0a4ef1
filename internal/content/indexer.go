// Enumerates the documents of the content tree.

package content

import (
	"cmp"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RootCategory is the category of documents that sit directly in the content root.
const RootCategory = "root"

// Record describes one document found by the Indexer.
type Record struct {
	Path     string // relative to the content root, slash separated
	Title    string
	Category string
	URL      string
}

// Indexer walks the content tree and derives a Record per document.
//
// Only files named exactly FileName are documents; every other file is
// ignored. Each listing re-walks the tree.
type Indexer struct {
	sandbox  *Sandbox
	fileName string
}

// NewIndexer returns an Indexer matching files named fileName, e.g. "page.md".
func NewIndexer(sandbox *Sandbox, fileName string) *Indexer {
	return &Indexer{sandbox: sandbox, fileName: fileName}
}

// All yields the documents in depth-first directory order.
//
// Hidden directories are skipped and symlinked directories are not followed.
// Each match is re-validated through the Sandbox, so a symlinked document
// pointing outside the root is left out.
func (ix *Indexer) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		root := ix.sandbox.Root()
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtree; keep going with the rest.
				if d != nil && d.IsDir() && p != root {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if p != root && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			if d.Name() != ix.fileName {
				return nil
			}
			rel := ix.sandbox.Rel(p)
			if _, err := ix.sandbox.ResolveDocument(rel, MustExist); err != nil {
				slog.Debug("Skipping document outside the sandbox", "path", rel, "err", err)
				return nil
			}
			if !yield(ix.record(p, rel)) {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			slog.Warn("Failed to walk content tree", "err", err)
		}
	}
}

// List returns every document sorted by category, then path.
func (ix *Indexer) List() []Record {
	out := slices.Collect(ix.All())
	slices.SortFunc(out, func(a, b Record) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Path, b.Path))
	})
	return out
}

// record derives the metadata of the document at rel. A "title" key in the
// document's front matter takes precedence over the inferred title.
func (ix *Indexer) record(abs, rel string) Record {
	r := Record{Path: rel, Category: RootCategory, URL: "/", Title: TitleFor(rel)}
	if dir := path.Dir(rel); dir != "." {
		r.Category, _, _ = strings.Cut(dir, "/")
		r.URL = "/" + dir
	}
	if t := frontMatterTitle(abs); t != "" {
		r.Title = t
	}
	return r
}

// TitleFor infers a title from the directory holding the document at rel.
// Documents directly in the content root are titled "Home".
func TitleFor(rel string) string {
	dir := path.Dir(path.Clean(strings.ReplaceAll(rel, `\`, "/")))
	if dir == "." || dir == "/" {
		return "Home"
	}
	return InferTitle(path.Base(dir))
}

// InferTitle turns a path segment such as "error-handling" into "Error Handling".
func InferTitle(seg string) string {
	words := strings.FieldsFunc(seg, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	if len(words) == 0 {
		return seg
	}
	// A Caser keeps state; one per call.
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func frontMatterTitle(abs string) string {
	data, err := os.ReadFile(abs) //nolint:gosec // G304: abs was validated by the sandbox
	if err != nil {
		return ""
	}
	meta, _, ok := SplitPreamble(data)
	if !ok {
		return ""
	}
	fm, err := ParseFrontMatter(meta)
	if err != nil {
		return ""
	}
	t, _ := fm["title"].(string)
	return strings.TrimSpace(t)
}
