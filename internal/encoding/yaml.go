package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/martinohmann/dts/internal/value"
)

// decodeYAML parses YAML input. A multi-document stream becomes an array
// with one element per document.
func decodeYAML(data []byte) (value.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.UseOrderedMap())

	var docs []value.Value
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return value.Null(), fmt.Errorf("%w: %v", ErrDecode, err)
		}

		v, err := fromYAML(doc)
		if err != nil {
			return value.Null(), fmt.Errorf("%w: %v", ErrDecode, err)
		}
		docs = append(docs, v)
	}

	switch len(docs) {
	case 0:
		return value.Null(), nil
	case 1:
		return docs[0], nil
	default:
		return value.Array(docs...), nil
	}
}

// fromYAML handles the ordered-map shape yaml.UseOrderedMap produces and
// defers everything else to the generic conversion.
func fromYAML(doc any) (value.Value, error) {
	switch d := doc.(type) {
	case yaml.MapSlice:
		obj := value.NewObject()
		for _, item := range d {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return value.Null(), err
			}
			obj.Set(key, val)
		}
		return value.Obj(obj), nil
	case []any:
		items := make([]value.Value, len(d))
		for i, item := range d {
			val, err := fromYAML(item)
			if err != nil {
				return value.Null(), err
			}
			items[i] = val
		}
		return value.Array(items...), nil
	default:
		return value.FromInterface(doc), nil
	}
}

func encodeYAML(v value.Value) ([]byte, error) {
	data, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

// toYAML mirrors Value.ToInterface but keeps object key order by emitting
// yaml.MapSlice instead of a map.
func toYAML(v value.Value) any {
	switch v.Kind() {
	case value.KindObject:
		obj, _ := v.AsObject()
		out := make(yaml.MapSlice, 0, obj.Len())
		for i := 0; i < obj.Len(); i++ {
			key, val := obj.At(i)
			out = append(out, yaml.MapItem{Key: key, Value: toYAML(val)})
		}
		return out
	case value.KindArray:
		items, _ := v.AsArray()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = toYAML(item)
		}
		return out
	default:
		return v.ToInterface()
	}
}
