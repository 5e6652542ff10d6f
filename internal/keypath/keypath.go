// Package keypath implements the textual path form used to address
// locations inside a value tree: dotted keys and bracketed indices or
// quoted keys, e.g. `foo.bar[5]["qu ux"]`.
package keypath

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrPathSyntax indicates malformed path text. Errors wrapping it carry the
// byte offset of the offending input.
var ErrPathSyntax = errors.New("path syntax error")

func syntaxError(offset int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrPathSyntax, offset, fmt.Sprintf(format, args...))
}

// Segment is a single path accessor: an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key creates an object key segment.
func Key(key string) Segment {
	return Segment{key: key}
}

// Index creates an array index segment.
func Index(index int) Segment {
	return Segment{index: index, isIndex: true}
}

// IsIndex reports whether the segment addresses an array position.
func (s Segment) IsIndex() bool {
	return s.isIndex
}

// Key returns the object key. Only meaningful when IsIndex is false.
func (s Segment) Key() string {
	return s.key
}

// Index returns the array index. Only meaningful when IsIndex is true.
func (s Segment) Index() int {
	return s.index
}

// String renders the segment in canonical form: indices bracketed, keys bare
// when they contain only word characters and bracket-quoted otherwise.
func (s Segment) String() string {
	if s.isIndex {
		return fmt.Sprintf("[%d]", s.index)
	}
	if bareKey(s.key) {
		return s.key
	}
	var b strings.Builder
	b.WriteString(`["`)
	for _, r := range s.key {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteString(`"]`)
	return b.String()
}

func bareKey(key string) bool {
	for _, r := range key {
		if r > 127 || !isKeyChar(byte(r)) {
			return false
		}
	}
	return true
}

func isKeyChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// Path is an ordered sequence of segments. An empty Path addresses the root.
type Path []Segment

// String renders the path in canonical form, parseable by Parse.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		s := seg.String()
		if i > 0 && !strings.HasPrefix(s, "[") {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}

// Parse parses path text into segments. An empty input is a single
// empty-string key. Malformed input fails with an error wrapping
// ErrPathSyntax.
func Parse(input string) (Path, error) {
	path, n, err := ParsePrefix(input)
	if err != nil {
		return nil, err
	}
	if n != len(input) {
		return nil, syntaxError(n, "unexpected character %q", input[n])
	}
	return path, nil
}

// ParsePrefix parses the longest path at the start of input and returns the
// number of bytes consumed. It stops at the first character that cannot
// continue a path; malformed bracket elements still fail.
func ParsePrefix(input string) (Path, int, error) {
	p := &parser{input: input}
	path, err := p.parsePath()
	if err != nil {
		return nil, 0, err
	}
	return path, p.pos, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parsePath() (Path, error) {
	var path Path

	// A leading bracket addresses the root directly, so there is no leading
	// key segment to read.
	if p.pos < len(p.input) && p.input[p.pos] == '[' {
		seg, err := p.bracketSegment()
		if err != nil {
			return nil, err
		}
		path = Path{seg}
	} else {
		path = Path{Key(p.bareKey())}
	}

	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '.':
			p.pos++
			path = append(path, Key(p.bareKey()))
		case '[':
			seg, err := p.bracketSegment()
			if err != nil {
				return nil, err
			}
			path = append(path, seg)
		default:
			return path, nil
		}
	}

	return path, nil
}

func (p *parser) bareKey() string {
	start := p.pos
	for p.pos < len(p.input) && isKeyChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) bracketSegment() (Segment, error) {
	open := p.pos
	p.pos++ // consume '['

	if p.pos >= len(p.input) {
		return Segment{}, syntaxError(open, "unterminated bracket")
	}

	switch c := p.input[p.pos]; {
	case c == '\'' || c == '"':
		key, err := p.quotedString()
		if err != nil {
			return Segment{}, err
		}
		if err := p.expect(']'); err != nil {
			return Segment{}, err
		}
		return Key(key), nil
	case c >= '0' && c <= '9':
		index := 0
		for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			if index > (math.MaxInt-9)/10 {
				return Segment{}, syntaxError(open, "index out of range")
			}
			index = index*10 + int(p.input[p.pos]-'0')
			p.pos++
		}
		if err := p.expect(']'); err != nil {
			return Segment{}, err
		}
		return Index(index), nil
	default:
		return Segment{}, syntaxError(p.pos, "expected index or quoted key, found %q", c)
	}
}

func (p *parser) quotedString() (string, error) {
	start := p.pos
	quote := p.input[p.pos]
	p.pos++

	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return "", syntaxError(start, "unterminated escape sequence")
			}
			b.WriteByte(p.input[p.pos])
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	return "", syntaxError(start, "unterminated string")
}

func (p *parser) expect(c byte) error {
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return syntaxError(p.pos, "expected %q", c)
	}
	p.pos++
	return nil
}
