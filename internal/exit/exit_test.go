package exit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/martinohmann/dts/internal/encoding"
	"github.com/martinohmann/dts/internal/transform"
)

func TestCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: CodeOK},
		{name: "expression_syntax", err: fmt.Errorf("x: %w", transform.ErrExpressionSyntax), want: CodeUsage},
		{name: "unknown_encoding", err: encoding.ErrUnknownEncoding, want: CodeUsage},
		{name: "decode_error", err: encoding.ErrDecode, want: CodeError},
		{name: "type_mismatch", err: transform.ErrTypeMismatch, want: CodeError},
		{name: "plain_error", err: errors.New("boom"), want: CodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Fatalf("Code(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
