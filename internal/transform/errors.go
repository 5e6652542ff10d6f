package transform

import (
	"errors"
	"fmt"

	"github.com/martinohmann/dts/internal/value"
)

// ErrExpressionSyntax indicates a malformed transformation expression:
// unknown function, bad arity or a malformed argument literal.
var ErrExpressionSyntax = errors.New("expression syntax error")

// ErrTypeMismatch indicates an operation applied to a value of the wrong
// shape. The error names the operation and the expected shape.
var ErrTypeMismatch = errors.New("type mismatch")

func expressionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExpressionSyntax, fmt.Sprintf(format, args...))
}

func typeError(op, expected string, got value.Kind) error {
	return fmt.Errorf("%w: %s expects %s, got %s", ErrTypeMismatch, op, expected, got)
}
