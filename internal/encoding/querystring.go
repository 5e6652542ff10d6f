package encoding

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/martinohmann/dts/internal/value"
)

// decodeQueryString parses URL query syntax into an object. Repeated keys
// become arrays; keys are ordered lexicographically since query strings
// carry no reliable order across parsers.
func decodeQueryString(data []byte) (value.Value, error) {
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return value.Null(), fmt.Errorf("%w: %v", ErrDecode, err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	obj := value.NewObject()
	for _, key := range keys {
		vals := values[key]
		if len(vals) == 1 {
			obj.Set(key, value.String(vals[0]))
			continue
		}
		items := make([]value.Value, len(vals))
		for i, v := range vals {
			items[i] = value.String(v)
		}
		obj.Set(key, value.Array(items...))
	}
	return value.Obj(obj), nil
}

func encodeQueryString(v value.Value) ([]byte, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("%w: query string output requires an object, got %s", ErrEncode, v.Kind())
	}

	values := url.Values{}
	for i := 0; i < obj.Len(); i++ {
		key, val := obj.At(i)

		if items, ok := val.AsArray(); ok {
			for _, item := range items {
				s, err := queryStringValue(item)
				if err != nil {
					return nil, fmt.Errorf("%w: key %q: %v", ErrEncode, key, err)
				}
				values.Add(key, s)
			}
			continue
		}

		s, err := queryStringValue(val)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrEncode, key, err)
		}
		values.Add(key, s)
	}
	return []byte(values.Encode()), nil
}

func queryStringValue(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return s, nil
	case value.KindNull, value.KindBool, value.KindNumber:
		return v.String(), nil
	default:
		return "", fmt.Errorf("cannot represent %s as a query string value", v.Kind())
	}
}
