// Splits and joins the YAML front matter block at the top of a document.

package content

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

const preambleDelim = "---"

// SplitPreamble separates the front matter block from the body.
//
// A preamble is present when the document starts with a "---" line and a
// later "---" line closes it. Delimiter lines may end in "\n" or "\r\n"; meta
// and body are sliced from data as is, line endings included. The single
// blank line JoinPreamble inserts after the closing delimiter is dropped from
// body. ok is false when there is no complete preamble, in which case body is
// the whole document.
func SplitPreamble(data []byte) (meta, body string, ok bool) {
	s := string(data)
	off, metaStart := 0, -1
	for line := range strings.Lines(s) {
		end := off + len(line)
		if metaStart < 0 {
			if !isDelim(line) || !strings.HasSuffix(line, "\n") {
				return "", s, false
			}
			metaStart = end
		} else if isDelim(line) {
			meta = trimEOL(s[metaStart:off])
			body = s[end:]
			if rest, found := strings.CutPrefix(body, "\r\n"); found {
				body = rest
			} else {
				body = strings.TrimPrefix(body, "\n")
			}
			return meta, body, true
		}
		off = end
	}
	return "", s, false
}

// HasOpenPreamble reports whether data starts a preamble that is never closed.
func HasOpenPreamble(data []byte) bool {
	s := string(data)
	if !strings.HasPrefix(s, preambleDelim+"\n") && !strings.HasPrefix(s, preambleDelim+"\r\n") {
		return false
	}
	_, _, ok := SplitPreamble(data)
	return !ok
}

// CheckFrontMatter validates meta for storage: it must not contain a "---"
// line, which would close the preamble early on the next read, and it must
// parse as YAML.
func CheckFrontMatter(meta string) error {
	for line := range strings.Lines(meta) {
		if isDelim(line) {
			return errors.New("must not contain a " + preambleDelim + " line")
		}
	}
	_, err := ParseFrontMatter(meta)
	return err
}

func isDelim(line string) bool {
	return trimEOL(line) == preambleDelim
}

// trimEOL removes one trailing "\n" or "\r\n".
func trimEOL(s string) string {
	if t, ok := strings.CutSuffix(s, "\n"); ok {
		return strings.TrimSuffix(t, "\r")
	}
	return s
}

// JoinPreamble is the inverse of SplitPreamble. An empty meta yields body unchanged.
func JoinPreamble(meta, body string) []byte {
	meta = strings.TrimRight(meta, "\n")
	if strings.TrimSpace(meta) == "" {
		return []byte(body)
	}
	var b strings.Builder
	b.Grow(len(meta) + len(body) + 10)
	b.WriteString(preambleDelim + "\n")
	b.WriteString(meta)
	b.WriteString("\n" + preambleDelim + "\n\n")
	b.WriteString(body)
	return []byte(b.String())
}

// ParseFrontMatter decodes a preamble into a map. An empty preamble yields nil.
func ParseFrontMatter(meta string) (map[string]any, error) {
	if strings.TrimSpace(meta) == "" {
		return nil, nil
	}
	var out map[string]any
	if err := yaml.Unmarshal([]byte(meta), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewDocument returns the body of a fresh document: a front matter block
// holding title followed by a matching heading.
func NewDocument(title string) []byte {
	meta, err := yaml.Marshal(map[string]string{"title": title})
	if err != nil {
		// A map of strings always marshals.
		panic(err)
	}
	return JoinPreamble(string(meta), "# "+title+"\n")
}
