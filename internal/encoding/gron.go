package encoding

import (
	"fmt"

	"github.com/martinohmann/dts/internal/gron"
	"github.com/martinohmann/dts/internal/value"
)

func decodeGron(data []byte) (value.Value, error) {
	v, err := gron.Unmarshal(data)
	if err != nil {
		return value.Null(), fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return v, nil
}

func encodeGron(v value.Value) ([]byte, error) {
	switch v.Kind() {
	case value.KindArray, value.KindObject:
		return gron.Marshal(v), nil
	default:
		// A scalar root would flatten to an empty path and not decode back.
		return nil, fmt.Errorf("%w: gron output requires an array or object root, got %s", ErrEncode, v.Kind())
	}
}
