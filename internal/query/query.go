// Package query is the selection-query boundary: it compiles JSONPath
// expressions and evaluates them against value trees, reporting matches
// together with the paths they were found at.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"

	"github.com/martinohmann/dts/internal/keypath"
	"github.com/martinohmann/dts/internal/value"
)

// ErrQuery indicates a malformed selection query.
var ErrQuery = errors.New("query error")

// Match is a single query result: the matched value and the path at which
// it was found.
type Match struct {
	Path  keypath.Path
	Value value.Value
}

// Selector is a compiled selection query. Compiling once up front separates
// query validation from evaluation so a bad query fails before any data is
// touched.
type Selector struct {
	query string
	path  *jsonpath.Path
}

// New compiles a query. The leading `$` may be omitted.
func New(query string) (*Selector, error) {
	path, err := jsonpath.Parse(normalize(query))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	return &Selector{query: query, path: path}, nil
}

// String returns the query as given.
func (s *Selector) String() string {
	return s.query
}

// Select returns the values matching the query, in document order.
func (s *Selector) Select(v value.Value) []value.Value {
	matches := s.SelectLocated(v)
	values := make([]value.Value, len(matches))
	for i, m := range matches {
		values[i] = m.Value
	}
	return values
}

// SelectLocated returns the matching locations, each with the value found
// there. Values are re-read from the input tree so object key order
// survives query evaluation.
func (s *Selector) SelectLocated(v value.Value) []Match {
	located := s.path.SelectLocated(v.ToInterface())

	matches := make([]Match, 0, len(located))
	for _, node := range located {
		path := convertPath(node.Path)
		if ref, ok := v.Get(path); ok {
			matches = append(matches, Match{Path: path, Value: ref.Clone()})
			continue
		}
		matches = append(matches, Match{Path: path, Value: value.FromInterface(node.Node)})
	}
	return matches
}

func convertPath(normalized spec.NormalizedPath) keypath.Path {
	path := make(keypath.Path, 0, len(normalized))
	for _, sel := range normalized {
		switch s := sel.(type) {
		case spec.Name:
			path = append(path, keypath.Key(string(s)))
		case spec.Index:
			path = append(path, keypath.Index(int(s)))
		}
	}
	return path
}

func normalize(query string) string {
	q := strings.TrimSpace(query)
	switch {
	case q == "" || q == ".":
		return "$"
	case strings.HasPrefix(q, "$"):
		return q
	case strings.HasPrefix(q, "["), strings.HasPrefix(q, "."):
		return "$" + q
	default:
		return "$." + q
	}
}
