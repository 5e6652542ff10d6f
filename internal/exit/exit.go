// Package exit maps errors to process exit codes. Usage mistakes (bad
// flags, malformed expressions or queries) exit with 2 so scripts can tell
// them apart from data errors, which exit with 1.
package exit

import (
	"errors"

	"github.com/martinohmann/dts/internal/encoding"
	"github.com/martinohmann/dts/internal/keypath"
	"github.com/martinohmann/dts/internal/query"
	"github.com/martinohmann/dts/internal/transform"
)

const (
	CodeOK    = 0
	CodeError = 1
	CodeUsage = 2
)

// Code returns the exit code for err.
func Code(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, transform.ErrExpressionSyntax),
		errors.Is(err, query.ErrQuery),
		errors.Is(err, keypath.ErrPathSyntax),
		errors.Is(err, encoding.ErrUnknownEncoding):
		return CodeUsage
	default:
		return CodeError
	}
}
