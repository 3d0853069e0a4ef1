package content

import "testing"

func TestSplitPreamble(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMeta string
		wantBody string
		wantOK   bool
	}{
		{"none", "# Title\n", "", "# Title\n", false},
		{"simple", "---\ntitle: A\n---\n\n# A\n", "title: A", "# A\n", true},
		{"no blank line", "---\ntitle: A\n---\n# A\n", "title: A", "# A\n", true},
		{"multi line", "---\ntitle: A\ntags: [x, y]\n---\n\nbody", "title: A\ntags: [x, y]", "body", true},
		{"empty", "---\n---\nbody", "", "body", true},
		{"only preamble", "---\ntitle: A\n---", "title: A", "", true},
		{"crlf", "---\r\ntitle: A\r\n---\r\n\r\nbody\r\n", "title: A", "body\r\n", true},
		{"crlf body kept", "---\ntitle: A\n---\n\nline1\r\nline2\r\n", "title: A", "line1\r\nline2\r\n", true},
		{"delimiter without newline", "---", "", "---", false},
		{"unterminated", "---\ntitle: A\nbody\n", "", "---\ntitle: A\nbody\n", false},
		{"not at start", "\n---\ntitle: A\n---\n", "", "\n---\ntitle: A\n---\n", false},
		{"thematic break in body", "---\na: 1\n---\n\nx\n---\ny", "a: 1", "x\n---\ny", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, ok := SplitPreamble([]byte(tt.in))
			if meta != tt.wantMeta || body != tt.wantBody || ok != tt.wantOK {
				t.Errorf("SplitPreamble() = (%q, %q, %v), want (%q, %q, %v)", meta, body, ok, tt.wantMeta, tt.wantBody, tt.wantOK)
			}
		})
	}
}

func TestJoinPreamble(t *testing.T) {
	if got := string(JoinPreamble("", "body")); got != "body" {
		t.Errorf("JoinPreamble(empty) = %q", got)
	}
	if got := string(JoinPreamble("  \n", "body")); got != "body" {
		t.Errorf("JoinPreamble(blank) = %q", got)
	}
	want := "---\ntitle: A\n---\n\n# A\n"
	if got := string(JoinPreamble("title: A\n", "# A\n")); got != want {
		t.Errorf("JoinPreamble() = %q, want %q", got, want)
	}
	meta, body, ok := SplitPreamble([]byte(want))
	if !ok || meta != "title: A" || body != "# A\n" {
		t.Errorf("SplitPreamble(JoinPreamble()) = (%q, %q, %v)", meta, body, ok)
	}
}

func TestJoinPreamble_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		meta string
		body string
	}{
		{"lf", "title: A", "# A\n\ntext\n"},
		{"crlf body", "title: A", "line1\r\nline2\r\n"},
		{"crlf meta", "title: A\r\norder: 2", "body"},
		{"leading blank line", "title: A", "\nbody"},
		{"leading crlf", "title: A", "\r\nbody"},
		{"thematic break", "title: A", "x\n---\ny\n"},
		{"empty body", "title: A", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, ok := SplitPreamble(JoinPreamble(tt.meta, tt.body))
			if !ok || meta != tt.meta || body != tt.body {
				t.Errorf("SplitPreamble(JoinPreamble(%q, %q)) = (%q, %q, %v)", tt.meta, tt.body, meta, body, ok)
			}
		})
	}
}

func TestCheckFrontMatter(t *testing.T) {
	for _, meta := range []string{"", "title: A", "title: A\ntags: [x]", "note: a---b"} {
		if err := CheckFrontMatter(meta); err != nil {
			t.Errorf("CheckFrontMatter(%q) = %v", meta, err)
		}
	}
	for _, meta := range []string{"a: 1\n---\nb: 2", "a: 1\r\n---\r\nb: 2", "---", "title: [x"} {
		if err := CheckFrontMatter(meta); err == nil {
			t.Errorf("CheckFrontMatter(%q) expected error", meta)
		}
	}
}

func TestHasOpenPreamble(t *testing.T) {
	for in, want := range map[string]bool{
		"---\ntitle: A\n":          true,
		"---\r\ntitle: A\r\n":      true,
		"---\ntitle: A\n---\nbody": false,
		"# body":                   false,
		"":                         false,
	} {
		if got := HasOpenPreamble([]byte(in)); got != want {
			t.Errorf("HasOpenPreamble(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFrontMatter(t *testing.T) {
	fm, err := ParseFrontMatter("title: Hello\norder: 3\n")
	if err != nil {
		t.Fatal(err)
	}
	if fm["title"] != "Hello" || fm["order"] != 3 {
		t.Errorf("ParseFrontMatter() = %v", fm)
	}
	if fm, err := ParseFrontMatter(""); err != nil || fm != nil {
		t.Errorf("ParseFrontMatter(empty) = %v, %v", fm, err)
	}
	if _, err := ParseFrontMatter("title: [unclosed"); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestNewDocument(t *testing.T) {
	got := string(NewDocument("Getting Started"))
	want := "---\ntitle: Getting Started\n---\n\n# Getting Started\n"
	if got != want {
		t.Errorf("NewDocument() = %q, want %q", got, want)
	}
	// Titles that need quoting stay valid YAML.
	meta, _, ok := SplitPreamble(NewDocument("A: B"))
	if !ok {
		t.Fatal("no preamble")
	}
	fm, err := ParseFrontMatter(meta)
	if err != nil || fm["title"] != "A: B" {
		t.Errorf("ParseFrontMatter() = %v, %v", fm, err)
	}
}
