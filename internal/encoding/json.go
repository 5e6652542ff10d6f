package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/martinohmann/dts/internal/value"
)

// decodeJSON parses a single JSON document through the token stream so that
// object key order survives; the stock map-based unmarshal would lose it.
func decodeJSON(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return value.Null(), fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return value.Null(), fmt.Errorf("%w: trailing data after JSON document", ErrDecode)
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Null(), err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(t), nil
	case json.Number:
		num, err := value.ParseNumber(t.String())
		if err != nil {
			return value.Null(), err
		}
		return value.Num(num), nil
	case string:
		return value.String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeJSONArray(dec)
		case '{':
			return decodeJSONObject(dec)
		}
	}
	return value.Null(), fmt.Errorf("unexpected token %v", tok)
}

func decodeJSONArray(dec *json.Decoder) (value.Value, error) {
	items := []value.Value{}
	for dec.More() {
		item, err := decodeJSONValue(dec)
		if err != nil {
			return value.Null(), err
		}
		items = append(items, item)
	}
	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return value.Null(), err
	}
	return value.Array(items...), nil
}

func decodeJSONObject(dec *json.Decoder) (value.Value, error) {
	obj := value.NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return value.Null(), err
		}
		key, ok := keyTok.(string)
		if !ok {
			return value.Null(), fmt.Errorf("unexpected object key %v", keyTok)
		}

		val, err := decodeJSONValue(dec)
		if err != nil {
			return value.Null(), err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return value.Null(), err
	}
	return value.Obj(obj), nil
}

func encodeJSON(v value.Value, opts EncodeOptions) ([]byte, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if !opts.Pretty {
		return compact, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
