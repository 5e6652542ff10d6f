package encoding

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/martinohmann/dts/internal/value"
)

// decodeText splits input into an array of strings, by lines unless a split
// pattern is given. The trailing newline of the last line is not a record.
func decodeText(data []byte, opts DecodeOptions) (value.Value, error) {
	input := string(data)

	var parts []string
	if opts.TextSplitPattern != "" {
		pattern, err := regexp.Compile(opts.TextSplitPattern)
		if err != nil {
			return value.Null(), fmt.Errorf("%w: invalid split pattern: %v", ErrDecode, err)
		}
		parts = pattern.Split(input, -1)
	} else {
		input = strings.TrimSuffix(input, "\n")
		parts = strings.Split(input, "\n")
	}

	items := make([]value.Value, len(parts))
	for i, part := range parts {
		items[i] = value.String(part)
	}
	return value.Array(items...), nil
}

// encodeText joins array items with the separator, newline by default.
// Strings are written raw, other scalars in their literal form.
func encodeText(v value.Value, opts EncodeOptions) ([]byte, error) {
	items, ok := v.AsArray()
	if !ok {
		return nil, fmt.Errorf("%w: text output requires an array, got %s", ErrEncode, v.Kind())
	}

	separator := opts.TextJoinSeparator
	if separator == "" {
		separator = "\n"
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString(separator)
		}
		if s, ok := item.AsString(); ok {
			b.WriteString(s)
			continue
		}
		b.WriteString(item.String())
	}
	return []byte(b.String()), nil
}
