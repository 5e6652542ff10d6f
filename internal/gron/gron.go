// Package gron implements the flattened-statement encoding: a document is
// an ordered sequence of `path = value;` assignments which flatten a value
// tree into one line per leaf and reassemble it back.
package gron

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/martinohmann/dts/internal/keypath"
	"github.com/martinohmann/dts/internal/stack"
	"github.com/martinohmann/dts/internal/value"
)

// ErrStatementSyntax indicates malformed statement text. Errors wrapping it
// carry the line and byte offset of the offending input.
var ErrStatementSyntax = errors.New("statement syntax error")

// Statement is one flattened assignment: a path and the literal value
// stored at that path.
type Statement struct {
	Path  keypath.Path
	Value value.Value
}

// String renders the statement as `path = value;`.
func (s Statement) String() string {
	return fmt.Sprintf("%s = %s;", s.Path, s.Value)
}

// Encode flattens a value into statements, depth-first in document order.
// Leaves and empty containers produce one statement each; non-empty
// containers are represented by their elements only.
func Encode(v value.Value) []Statement {
	e := encoder{segments: stack.New[keypath.Segment]()}
	e.walk(v)
	return e.statements
}

type encoder struct {
	segments   *stack.Stack[keypath.Segment]
	statements []Statement
}

func (e *encoder) walk(v value.Value) {
	switch v.Kind() {
	case value.KindArray:
		items, _ := v.AsArray()
		if len(items) == 0 {
			e.emit(value.Array())
			return
		}
		for i, item := range items {
			e.segments.Push(keypath.Index(i))
			e.walk(item)
			e.segments.Pop()
		}
	case value.KindObject:
		obj, _ := v.AsObject()
		if obj.Len() == 0 {
			e.emit(value.Obj(nil))
			return
		}
		for i := 0; i < obj.Len(); i++ {
			key, item := obj.At(i)
			e.segments.Push(keypath.Key(key))
			e.walk(item)
			e.segments.Pop()
		}
	default:
		e.emit(v)
	}
}

func (e *encoder) emit(v value.Value) {
	e.statements = append(e.statements, Statement{
		Path:  keypath.Path(e.segments.ToSlice()),
		Value: v,
	})
}

// Marshal renders the value as statement text, one statement per line.
// A scalar root produces a single statement with an empty path, which
// decodes to an object under the empty key rather than back to the scalar;
// callers needing the round trip must pass a container root.
func Marshal(v value.Value) []byte {
	var buf bytes.Buffer
	for _, s := range Encode(v) {
		buf.WriteString(s.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Parse scans statement text into statements. A malformed statement aborts
// with a positional error; no partial result is returned.
func Parse(input string) ([]Statement, error) {
	p := &parser{input: input}
	return p.parseStatements()
}

// Build reassembles a value tree from statements, applying them in order.
// Intermediate containers are created on demand and arrays are padded with
// nulls for out-of-order indices; later statements for the same path win.
func Build(statements []Statement) value.Value {
	root := value.Null()
	for _, s := range statements {
		root.Set(s.Path, s.Value)
	}
	return root
}

// Unmarshal parses statement text and reassembles the value tree.
func Unmarshal(input []byte) (value.Value, error) {
	statements, err := Parse(string(input))
	if err != nil {
		return value.Null(), err
	}
	return Build(statements), nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) syntaxError(offset int, format string, args ...any) error {
	line := 1 + strings.Count(p.input[:offset], "\n")
	return fmt.Errorf("%w at line %d, offset %d: %s", ErrStatementSyntax, line, offset, fmt.Sprintf(format, args...))
}

func (p *parser) parseStatements() ([]Statement, error) {
	var statements []Statement

	p.skipSpace()
	for p.pos < len(p.input) {
		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
		p.skipSpace()
	}

	return statements, nil
}

func (p *parser) parseStatement() (Statement, error) {
	path, n, err := keypath.ParsePrefix(p.input[p.pos:])
	if err != nil {
		return Statement{}, p.syntaxError(p.pos, "invalid path: %v", err)
	}
	p.pos += n

	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '=' {
		return Statement{}, p.syntaxError(p.pos, "expected '='")
	}
	p.pos++
	p.skipSpace()

	literal, err := p.parseValue()
	if err != nil {
		return Statement{}, err
	}

	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == ';' {
		p.pos++
	}

	return Statement{Path: path, Value: literal}, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}
