package compile

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/maruel/mdgate/internal/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Error is a compile failure with a best-effort source position.
type Error struct {
	Message string
	Line    int // 1-based; 0 when unknown
	Column  int // 1-based; 0 when unknown
	Snippet string
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Markdown compiles documents to HTML with GitHub flavored markdown.
//
// The front matter block is validated as YAML and stripped from the output.
// Raw HTML in the source is not passed through.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a Markdown compiler. It is safe for concurrent use.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Compile renders src. Failures are *Error.
func (m *Markdown) Compile(src []byte) (string, error) {
	if content.HasOpenPreamble(src) {
		return "", &Error{Message: "front matter is not terminated by a --- line", Line: 1, Column: 1, Snippet: sourceLine(src, 1)}
	}
	body := src
	if meta, rest, ok := content.SplitPreamble(src); ok {
		if _, err := content.ParseFrontMatter(meta); err != nil {
			return "", frontMatterError(err, src)
		}
		body = []byte(rest)
	}
	var buf bytes.Buffer
	if err := m.md.Convert(body, &buf); err != nil {
		return "", &Error{Message: err.Error()}
	}
	return buf.String(), nil
}

// frontMatterError converts a yaml error into an *Error positioned in src. The
// preamble starts on the second line of the document.
func frontMatterError(err error, src []byte) *Error {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	e := &Error{Message: "invalid front matter: " + msg}
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			e.Line = n + 1
			e.Snippet = sourceLine(src, e.Line)
		}
	}
	return e
}

// sourceLine returns the 1-based line n of src, or "" when out of range.
func sourceLine(src []byte, n int) string {
	i := 0
	for line := range strings.Lines(strings.ReplaceAll(string(src), "\r\n", "\n")) {
		i++
		if i == n {
			return strings.TrimRight(line, "\n")
		}
	}
	return ""
}
