package gron

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/martinohmann/dts/internal/value"
)

// parseValue parses a single JSON value literal at the current position:
// null, booleans, numbers, double-quoted strings, arrays and objects.
func (p *parser) parseValue() (value.Value, error) {
	if p.pos >= len(p.input) {
		return value.Null(), p.syntaxError(p.pos, "expected value")
	}

	switch c := p.input[p.pos]; {
	case c == 'n':
		return value.Null(), p.keyword("null")
	case c == 't':
		return value.Bool(true), p.keyword("true")
	case c == 'f':
		return value.Bool(false), p.keyword("false")
	case c == '"':
		s, err := p.parseString()
		return value.String(s), err
	case c == '[':
		return p.parseArray()
	case c == '{':
		return p.parseObject()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return value.Null(), p.syntaxError(p.pos, "unexpected character %q", c)
	}
}

func (p *parser) keyword(word string) error {
	if !strings.HasPrefix(p.input[p.pos:], word) {
		return p.syntaxError(p.pos, "expected %q", word)
	}
	p.pos += len(word)
	return nil
}

func (p *parser) parseNumber() (value.Value, error) {
	start := p.pos
	if p.input[p.pos] == '-' {
		p.pos++
	}

	digits := p.digits()
	if digits == 0 {
		return value.Null(), p.syntaxError(start, "invalid number")
	}
	if digits > 1 && p.input[start] == '0' || digits > 1 && p.input[start] == '-' && p.input[start+1] == '0' {
		return value.Null(), p.syntaxError(start, "invalid leading zero")
	}

	if p.pos < len(p.input) && p.input[p.pos] == '.' {
		p.pos++
		if p.digits() == 0 {
			return value.Null(), p.syntaxError(start, "invalid fraction")
		}
	}

	if p.pos < len(p.input) && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		p.pos++
		if p.pos < len(p.input) && (p.input[p.pos] == '+' || p.input[p.pos] == '-') {
			p.pos++
		}
		if p.digits() == 0 {
			return value.Null(), p.syntaxError(start, "invalid exponent")
		}
	}

	n, err := value.ParseNumber(p.input[start:p.pos])
	if err != nil {
		return value.Null(), p.syntaxError(start, "invalid number %q", p.input[start:p.pos])
	}
	return value.Num(n), nil
}

func (p *parser) digits() int {
	count := 0
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
		count++
	}
	return count
}

func (p *parser) parseString() (string, error) {
	start := p.pos
	p.pos++ // consume '"'

	var b strings.Builder
	for p.pos < len(p.input) {
		switch c := p.input[p.pos]; c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return "", p.syntaxError(start, "unterminated escape sequence")
			}
			switch esc := p.input[p.pos]; esc {
			case '"', '\\', '/':
				b.WriteByte(esc)
				p.pos++
			case 'b':
				b.WriteByte('\b')
				p.pos++
			case 'f':
				b.WriteByte('\f')
				p.pos++
			case 'n':
				b.WriteByte('\n')
				p.pos++
			case 'r':
				b.WriteByte('\r')
				p.pos++
			case 't':
				b.WriteByte('\t')
				p.pos++
			case 'u':
				r, err := p.unicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", p.syntaxError(p.pos, "invalid escape character %q", esc)
			}
		case '\n':
			return "", p.syntaxError(start, "unterminated string")
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	return "", p.syntaxError(start, "unterminated string")
}

func (p *parser) unicodeEscape() (rune, error) {
	r, err := p.hex4()
	if err != nil {
		return 0, err
	}

	if utf16.IsSurrogate(r) && strings.HasPrefix(p.input[p.pos:], `\u`) {
		pos := p.pos
		p.pos += 2
		r2, err := p.hex4()
		if err != nil {
			return 0, err
		}
		if combined := utf16.DecodeRune(r, r2); combined != utf8.RuneError {
			return combined, nil
		}
		p.pos = pos
	}

	return r, nil
}

func (p *parser) hex4() (rune, error) {
	p.pos++ // consume 'u'
	if p.pos+4 > len(p.input) {
		return 0, p.syntaxError(p.pos, "invalid unicode escape")
	}

	var r rune
	for i := 0; i < 4; i++ {
		c := p.input[p.pos]
		switch {
		case c >= '0' && c <= '9':
			r = r*16 + rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r*16 + rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r*16 + rune(c-'A'+10)
		default:
			return 0, p.syntaxError(p.pos, "invalid unicode escape")
		}
		p.pos++
	}
	return r, nil
}

func (p *parser) parseArray() (value.Value, error) {
	p.pos++ // consume '['
	items := []value.Value{}

	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return value.Null(), p.syntaxError(p.pos, "unterminated array")
		}
		if p.input[p.pos] == ']' {
			p.pos++
			return value.Array(items...), nil
		}

		item, err := p.parseValue()
		if err != nil {
			return value.Null(), err
		}
		items = append(items, item)

		p.skipSpace()
		if p.pos >= len(p.input) {
			return value.Null(), p.syntaxError(p.pos, "unterminated array")
		}
		switch p.input[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return value.Array(items...), nil
		default:
			return value.Null(), p.syntaxError(p.pos, "expected ',' or ']'")
		}
	}
}

func (p *parser) parseObject() (value.Value, error) {
	p.pos++ // consume '{'
	obj := value.NewObject()

	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return value.Null(), p.syntaxError(p.pos, "unterminated object")
		}
		if p.input[p.pos] == '}' {
			p.pos++
			return value.Obj(obj), nil
		}

		if p.input[p.pos] != '"' {
			return value.Null(), p.syntaxError(p.pos, "expected object key")
		}
		key, err := p.parseString()
		if err != nil {
			return value.Null(), err
		}

		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ':' {
			return value.Null(), p.syntaxError(p.pos, "expected ':'")
		}
		p.pos++
		p.skipSpace()

		val, err := p.parseValue()
		if err != nil {
			return value.Null(), err
		}
		obj.Set(key, val)

		p.skipSpace()
		if p.pos >= len(p.input) {
			return value.Null(), p.syntaxError(p.pos, "unterminated object")
		}
		switch p.input[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return value.Obj(obj), nil
		default:
			return value.Null(), p.syntaxError(p.pos, "expected ',' or '}'")
		}
	}
}
