// Package highlight adds terminal colors to encoded output. Coloring is a
// display concern only: the colored bytes are never valid input for the
// decoders, so it applies exclusively to terminal sinks.
package highlight

import (
	"bytes"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/martinohmann/dts/internal/encoding"
)

// Mode controls when output is colored.
type Mode string

const (
	// ModeAuto colors output when the destination is a terminal.
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// Enabled reports whether output written to w should be colored under the
// given mode.
func Enabled(mode Mode, w io.Writer) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd())
	}
}

var (
	keyColor     = color.New(color.FgBlue).SprintFunc()
	stringColor  = color.New(color.FgGreen).SprintFunc()
	numberColor  = color.New(color.FgCyan).SprintFunc()
	literalColor = color.New(color.FgYellow).SprintFunc()
)

// Highlight colors data for terminal display. JSON and gron documents get
// token-level coloring, other encodings pass through unchanged.
func Highlight(enc encoding.Encoding, data []byte) []byte {
	switch enc {
	case encoding.JSON, encoding.Gron:
		return colorize(data)
	default:
		return data
	}
}

// colorize scans JSON-ish text byte by byte: strings (keys when followed by
// a colon), numbers and the keyword literals get colors, everything else is
// copied through. Gron paths are bare text and stay uncolored, which reads
// fine since the assigned values still light up.
func colorize(data []byte) []byte {
	var buf bytes.Buffer
	pos := 0

	for pos < len(data) {
		ch := data[pos]
		switch {
		case ch == '"':
			end := scanString(data, pos)
			token := string(data[pos:end])
			if isKey(data, end) {
				buf.WriteString(keyColor(token))
			} else {
				buf.WriteString(stringColor(token))
			}
			pos = end
		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := scanNumber(data, pos)
			buf.WriteString(numberColor(string(data[pos:end])))
			pos = end
		case hasKeyword(data, pos, "true"):
			buf.WriteString(literalColor("true"))
			pos += 4
		case hasKeyword(data, pos, "false"):
			buf.WriteString(literalColor("false"))
			pos += 5
		case hasKeyword(data, pos, "null"):
			buf.WriteString(literalColor("null"))
			pos += 4
		default:
			buf.WriteByte(ch)
			pos++
		}
	}
	return buf.Bytes()
}

func scanString(data []byte, start int) int {
	pos := start + 1
	for pos < len(data) {
		switch data[pos] {
		case '\\':
			pos += 2
		case '"':
			return pos + 1
		default:
			pos++
		}
	}
	return pos
}

func scanNumber(data []byte, start int) int {
	pos := start
	if data[pos] == '-' {
		pos++
	}
	for pos < len(data) {
		ch := data[pos]
		if ch >= '0' && ch <= '9' || ch == '.' || ch == 'e' || ch == 'E' || ch == '+' || ch == '-' {
			pos++
			continue
		}
		break
	}
	return pos
}

func isKey(data []byte, pos int) bool {
	for pos < len(data) {
		switch data[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}

func hasKeyword(data []byte, pos int, keyword string) bool {
	if !bytes.HasPrefix(data[pos:], []byte(keyword)) {
		return false
	}
	end := pos + len(keyword)
	if end >= len(data) {
		return true
	}
	next := data[end]
	return !(next == '_' || next >= 'a' && next <= 'z' || next >= 'A' && next <= 'Z' || next >= '0' && next <= '9')
}
