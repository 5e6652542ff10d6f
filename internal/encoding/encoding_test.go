package encoding

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/martinohmann/dts/internal/value"
)

func mustDecode(t *testing.T, enc Encoding, doc string, opts DecodeOptions) value.Value {
	t.Helper()
	v, err := Decode(enc, []byte(doc), opts)
	if err != nil {
		t.Fatalf("Decode(%s, %q) unexpected error: %v", enc, doc, err)
	}
	return v
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Encoding
		wantErr bool
	}{
		{name: "json", input: "json", want: JSON},
		{name: "yaml", input: "yaml", want: YAML},
		{name: "yml_alias", input: "yml", want: YAML},
		{name: "case_insensitive", input: "JSON", want: JSON},
		{name: "query_string_alias", input: "qs", want: QueryString},
		{name: "txt_alias", input: "txt", want: Text},
		{name: "gron", input: "gron", want: Gron},
		{name: "unknown", input: "toml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEncoding) {
					t.Fatalf("Parse(%q) error = %v, want ErrUnknownEncoding", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromPath(t *testing.T) {
	t.Parallel()

	if enc, err := FromPath("dir/data.yaml"); err != nil || enc != YAML {
		t.Fatalf("FromPath() = (%s, %v), want (yaml, nil)", enc, err)
	}
	if _, err := FromPath("no-extension"); !errors.Is(err, ErrUnknownEncoding) {
		t.Fatalf("FromPath() error = %v, want ErrUnknownEncoding", err)
	}
}

func TestJSONDecodePreservesKeyOrder(t *testing.T) {
	t.Parallel()

	doc := `{"z":1,"a":{"y":2,"b":3},"m":[{"q":4,"p":5}]}`
	v := mustDecode(t, JSON, doc, DecodeOptions{})

	if got := v.String(); got != doc {
		t.Fatalf("decode changed key order: %s, want %s", got, doc)
	}
}

func TestJSONDecodeErrors(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "{", `{"a":}`, "1 2", "[1,]"} {
		if _, err := Decode(JSON, []byte(doc), DecodeOptions{}); !errors.Is(err, ErrDecode) {
			t.Fatalf("Decode(%q) error = %v, want ErrDecode", doc, err)
		}
	}
}

func TestJSONNumberFidelity(t *testing.T) {
	t.Parallel()

	doc := `{"int":2,"float":2.0,"frac":2.5}`
	v := mustDecode(t, JSON, doc, DecodeOptions{})

	out, err := Encode(JSON, v, EncodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != doc {
		t.Fatalf("round trip = %s, want %s", out, doc)
	}
}

func TestJSONEncodePretty(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, JSON, `{"a":[1,2]}`, DecodeOptions{})

	out, err := Encode(JSON, v, EncodeOptions{Pretty: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if string(out) != want {
		t.Fatalf("pretty output = %q, want %q", out, want)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	doc := "z: 1\na:\n  y: hello\n  b: [1, 2]\nm: null\n"
	v := mustDecode(t, YAML, doc, DecodeOptions{})

	if got, want := v.String(), `{"z":1,"a":{"y":"hello","b":[1,2]},"m":null}`; got != want {
		t.Fatalf("decoded value = %s, want %s", got, want)
	}

	out, err := Encode(YAML, v, EncodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back := mustDecode(t, YAML, string(out), DecodeOptions{})
	if !v.Equal(back) {
		t.Fatalf("YAML round trip changed the value: %s != %s", v, back)
	}
}

func TestYAMLMultiDocument(t *testing.T) {
	t.Parallel()

	doc := "a: 1\n---\nb: 2\n"
	v := mustDecode(t, YAML, doc, DecodeOptions{})

	if got, want := v.String(), `[{"a":1},{"b":2}]`; got != want {
		t.Fatalf("decoded value = %s, want %s", got, want)
	}
}

func TestCSVDecode(t *testing.T) {
	t.Parallel()

	doc := "name,price\nfoo,10\nbar,20\n"

	tests := []struct {
		name string
		opts DecodeOptions
		want string
	}{
		{
			name: "default_skips_header_row",
			opts: DecodeOptions{},
			want: `[["foo","10"],["bar","20"]]`,
		},
		{
			name: "headers_as_keys",
			opts: DecodeOptions{CSVHeadersAsKeys: true},
			want: `[{"name":"foo","price":"10"},{"name":"bar","price":"20"}]`,
		},
		{
			name: "without_headers",
			opts: DecodeOptions{CSVWithoutHeaders: true},
			want: `[["name","price"],["foo","10"],["bar","20"]]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustDecode(t, CSV, doc, tt.opts)
			if got := v.String(); got != tt.want {
				t.Fatalf("decoded value = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCSVDecodeCustomDelimiter(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, CSV, "a;b\n1;2\n", DecodeOptions{CSVDelimiter: ';', CSVHeadersAsKeys: true})
	if got, want := v.String(), `[{"a":"1","b":"2"}]`; got != want {
		t.Fatalf("decoded value = %s, want %s", got, want)
	}
}

func TestCSVEncode(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, JSON, `[["a","1"],[true,null]]`, DecodeOptions{})

	out, err := Encode(CSV, v, EncodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), "a,1\ntrue,\n"; got != want {
		t.Fatalf("encoded CSV = %q, want %q", got, want)
	}
}

func TestCSVEncodeKeysAsHeaders(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, JSON, `[{"name":"foo","price":10},{"name":"bar","extra":true}]`, DecodeOptions{})

	out, err := Encode(CSV, v, EncodeOptions{KeysAsCSVHeaders: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Headers come from the first object; missing keys become empty cells
	// and keys the first object does not have are dropped.
	want := "name,price\nfoo,10\nbar,\n"
	if string(out) != want {
		t.Fatalf("encoded CSV = %q, want %q", out, want)
	}
}

func TestCSVEncodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		opts EncodeOptions
	}{
		{name: "non_array_root", doc: `{"a":1}`},
		{name: "non_array_row", doc: `[1]`},
		{name: "container_cell", doc: `[[{"a":1}]]`},
		{name: "non_object_row_with_headers", doc: `[[1]]`, opts: EncodeOptions{KeysAsCSVHeaders: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustDecode(t, JSON, tt.doc, DecodeOptions{})
			if _, err := Encode(CSV, v, tt.opts); !errors.Is(err, ErrEncode) {
				t.Fatalf("Encode() error = %v, want ErrEncode", err)
			}
		})
	}
}

func TestQueryStringRoundTrip(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, QueryString, "b=2&a=1&a=3", DecodeOptions{})
	if got, want := v.String(), `{"a":["1","3"],"b":"2"}`; got != want {
		t.Fatalf("decoded value = %s, want %s", got, want)
	}

	out, err := Encode(QueryString, v, EncodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), "a=1&a=3&b=2"; got != want {
		t.Fatalf("encoded query string = %q, want %q", got, want)
	}
}

func TestQueryStringEncodeScalars(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, JSON, `{"n":1,"b":true,"s":"x y"}`, DecodeOptions{})

	out, err := Encode(QueryString, v, EncodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), "b=true&n=1&s=x+y"; got != want {
		t.Fatalf("encoded query string = %q, want %q", got, want)
	}
}

func TestQueryStringEncodeRejectsNonObject(t *testing.T) {
	t.Parallel()

	if _, err := Encode(QueryString, value.Array(), EncodeOptions{}); !errors.Is(err, ErrEncode) {
		t.Fatalf("Encode() error = %v, want ErrEncode", err)
	}
}

func TestTextDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		opts DecodeOptions
		want []string
	}{
		{name: "lines", doc: "foo\nbar\n", want: []string{"foo", "bar"}},
		{name: "no_trailing_newline", doc: "foo\nbar", want: []string{"foo", "bar"}},
		{name: "split_pattern", doc: "a, b,c", opts: DecodeOptions{TextSplitPattern: `,\s*`}, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustDecode(t, Text, tt.doc, tt.opts)
			items, ok := v.AsArray()
			if !ok {
				t.Fatalf("decoded value is %s, want array", v.Kind())
			}

			got := make([]string, len(items))
			for i, item := range items {
				got[i], _ = item.AsString()
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("decoded lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTextDecodeBadPattern(t *testing.T) {
	t.Parallel()

	if _, err := Decode(Text, []byte("x"), DecodeOptions{TextSplitPattern: "["}); !errors.Is(err, ErrDecode) {
		t.Fatalf("Decode() error = %v, want ErrDecode", err)
	}
}

func TestTextEncode(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, JSON, `["foo",1,true,{"a":1}]`, DecodeOptions{})

	out, err := Encode(Text, v, EncodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), "foo\n1\ntrue\n{\"a\":1}"; got != want {
		t.Fatalf("encoded text = %q, want %q", got, want)
	}

	out, err = Encode(Text, v, EncodeOptions{TextJoinSeparator: ", "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "foo, 1") {
		t.Fatalf("custom separator not applied: %q", out)
	}
}

func TestGronRoundTrip(t *testing.T) {
	t.Parallel()

	doc := `{"a":{"b":[1,2]},"c":null}`
	v := mustDecode(t, JSON, doc, DecodeOptions{})

	out, err := Encode(Gron, v, EncodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "a.b[0] = 1;\na.b[1] = 2;\nc = null;\n"
	if string(out) != want {
		t.Fatalf("encoded gron = %q, want %q", out, want)
	}

	back := mustDecode(t, Gron, string(out), DecodeOptions{})
	if !v.Equal(back) {
		t.Fatalf("gron round trip changed the value: %s != %s", v, back)
	}
}

func TestGronEncodeRejectsScalarRoot(t *testing.T) {
	t.Parallel()

	for _, v := range []value.Value{value.Null(), value.Int(1), value.String("x")} {
		if _, err := Encode(Gron, v, EncodeOptions{}); !errors.Is(err, ErrEncode) {
			t.Fatalf("Encode(gron, %s) error = %v, want ErrEncode", v, err)
		}
	}
}

func TestCrossEncodingPipeline(t *testing.T) {
	t.Parallel()

	// CSV in, JSON out: the shape survives the value model.
	v := mustDecode(t, CSV, "name,price\nfoo,10\n", DecodeOptions{CSVHeadersAsKeys: true})

	out, err := Encode(JSON, v, EncodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), `[{"name":"foo","price":"10"}]`; got != want {
		t.Fatalf("encoded JSON = %s, want %s", out, want)
	}
}
