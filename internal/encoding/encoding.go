// Package encoding converts between serialized documents and value trees.
// Each supported encoding has a decode and an encode side; which one to use
// is picked explicitly or inferred from a file extension.
package encoding

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/martinohmann/dts/internal/value"
)

var (
	// ErrUnknownEncoding indicates an encoding name or file extension that
	// no codec claims.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrDecode indicates malformed input for the chosen encoding.
	ErrDecode = errors.New("decode error")

	// ErrEncode indicates a value that the chosen encoding cannot represent.
	ErrEncode = errors.New("encode error")
)

// Encoding identifies a serialization format.
type Encoding string

const (
	JSON        Encoding = "json"
	YAML        Encoding = "yaml"
	CSV         Encoding = "csv"
	QueryString Encoding = "query-string"
	Text        Encoding = "text"
	Gron        Encoding = "gron"
)

// Parse resolves an encoding name, accepting the common aliases.
func Parse(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "csv":
		return CSV, nil
	case "query-string", "querystring", "qs":
		return QueryString, nil
	case "text", "txt":
		return Text, nil
	case "gron":
		return Gron, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// FromPath infers the encoding from the file extension.
func FromPath(path string) (Encoding, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no file extension", ErrUnknownEncoding, path)
	}
	return Parse(ext)
}

// DecodeOptions adjust how input documents are read.
type DecodeOptions struct {
	// CSVDelimiter is the field separator, comma when zero.
	CSVDelimiter rune
	// CSVHeadersAsKeys decodes each row into an object keyed by the header
	// row instead of an array of fields.
	CSVHeadersAsKeys bool
	// CSVWithoutHeaders treats the first row as data.
	CSVWithoutHeaders bool
	// TextSplitPattern is a regular expression to split text input on;
	// empty splits into lines.
	TextSplitPattern string
}

// EncodeOptions adjust how output documents are written.
type EncodeOptions struct {
	// Pretty renders multi-line output with indentation where the encoding
	// distinguishes a compact and a pretty form.
	Pretty bool
	// CSVDelimiter is the field separator, comma when zero.
	CSVDelimiter rune
	// KeysAsCSVHeaders encodes an array of objects with a header row taken
	// from the keys of the first object.
	KeysAsCSVHeaders bool
	// TextJoinSeparator joins array items in text output, newline when
	// empty.
	TextJoinSeparator string
}

// Decode parses data according to the encoding.
func Decode(enc Encoding, data []byte, opts DecodeOptions) (value.Value, error) {
	switch enc {
	case JSON:
		return decodeJSON(data)
	case YAML:
		return decodeYAML(data)
	case CSV:
		return decodeCSV(data, opts)
	case QueryString:
		return decodeQueryString(data)
	case Text:
		return decodeText(data, opts)
	case Gron:
		return decodeGron(data)
	default:
		return value.Null(), fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

// Encode renders v according to the encoding.
func Encode(enc Encoding, v value.Value, opts EncodeOptions) ([]byte, error) {
	switch enc {
	case JSON:
		return encodeJSON(v, opts)
	case YAML:
		return encodeYAML(v)
	case CSV:
		return encodeCSV(v, opts)
	case QueryString:
		return encodeQueryString(v)
	case Text:
		return encodeText(v, opts)
	case Gron:
		return encodeGron(v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}
