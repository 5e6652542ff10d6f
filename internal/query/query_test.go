package query

import (
	"errors"
	"testing"

	"github.com/martinohmann/dts/internal/value"
)

func fixture() value.Value {
	item1 := value.NewObject()
	item1.Set("name", value.String("a"))
	item1.Set("price", value.Int(10))

	item2 := value.NewObject()
	item2.Set("name", value.String("b"))
	item2.Set("price", value.Int(20))

	root := value.NewObject()
	root.Set("items", value.Array(value.Obj(item1), value.Obj(item2)))
	root.Set("total", value.Int(30))
	return value.Obj(root)
}

func TestNewRejectsMalformedQueries(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"$[", "$.items[?", "$..[?(]"} {
		if _, err := New(q); !errors.Is(err, ErrQuery) {
			t.Fatalf("New(%q) error = %v, want ErrQuery", q, err)
		}
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "root", query: "$", want: []string{`{"items":[{"name":"a","price":10},{"name":"b","price":20}],"total":30}`}},
		{name: "single_key", query: "total", want: []string{"30"}},
		{name: "leading_dollar_optional", query: "$.total", want: []string{"30"}},
		{name: "wildcard", query: "items[*].name", want: []string{`"a"`, `"b"`}},
		{name: "index", query: "items[1].price", want: []string{"20"}},
		{name: "no_match", query: "missing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector, err := New(tt.query)
			if err != nil {
				t.Fatalf("New(%q) unexpected error: %v", tt.query, err)
			}

			got := selector.Select(fixture())
			if len(got) != len(tt.want) {
				t.Fatalf("Select() returned %d values, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].String() != tt.want[i] {
					t.Fatalf("Select() value %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelectLocatedPaths(t *testing.T) {
	t.Parallel()

	selector, err := New("items[*].price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := selector.SelectLocated(fixture())
	if len(matches) != 2 {
		t.Fatalf("SelectLocated() returned %d matches, want 2", len(matches))
	}

	wantPaths := []string{"items[0].price", "items[1].price"}
	for i, m := range matches {
		if m.Path.String() != wantPaths[i] {
			t.Fatalf("match %d path = %s, want %s", i, m.Path, wantPaths[i])
		}
	}
}

func TestSelectPreservesKeyOrder(t *testing.T) {
	t.Parallel()

	selector, err := New("items[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := selector.Select(fixture())
	if len(got) != 1 {
		t.Fatalf("Select() returned %d values, want 1", len(got))
	}
	if want := `{"name":"a","price":10}`; got[0].String() != want {
		t.Fatalf("Select() = %s, want %s", got[0], want)
	}
}
