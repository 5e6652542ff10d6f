package highlight

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/martinohmann/dts/internal/encoding"
)

func TestEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if Enabled(ModeAuto, &buf) {
		t.Fatal("auto mode should not color plain writers")
	}
	if !Enabled(ModeAlways, &buf) {
		t.Fatal("always mode should color")
	}
	if Enabled(ModeNever, &buf) {
		t.Fatal("never mode should not color")
	}
}

func TestHighlightJSON(t *testing.T) {
	// Manipulates the global color switch, so not parallel.
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	got := string(Highlight(encoding.JSON, []byte(`{"a": "x", "n": -1.5, "b": true, "z": null}`)))

	if !strings.Contains(got, "\x1b[") {
		t.Fatal("expected ANSI escapes in highlighted output")
	}
	if !strings.Contains(got, `"a"`) || !strings.Contains(got, `"x"`) {
		t.Fatalf("token text lost: %q", got)
	}

	// Stripping the escapes restores the original text.
	stripped := stripANSI(got)
	if want := `{"a": "x", "n": -1.5, "b": true, "z": null}`; stripped != want {
		t.Fatalf("stripped output = %q, want %q", stripped, want)
	}
}

func TestHighlightLeavesOtherEncodingsAlone(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	doc := []byte("a: true\n")
	if got := Highlight(encoding.YAML, doc); !bytes.Equal(got, doc) {
		t.Fatalf("YAML output was modified: %q", got)
	}
}

func TestHighlightGronKeepsStructure(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	doc := "a.b = \"x\";\na.c = 1;\n"
	got := stripANSI(string(Highlight(encoding.Gron, []byte(doc))))
	if got != doc {
		t.Fatalf("stripped gron output = %q, want %q", got, doc)
	}
}

func TestHighlightEscapedQuotes(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	doc := `{"a": "qu\"ote"}`
	if got := stripANSI(string(Highlight(encoding.JSON, []byte(doc)))); got != doc {
		t.Fatalf("stripped output = %q, want %q", got, doc)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
