package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/martinohmann/dts/internal/encoding"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestResolveDefaultsToStdin(t *testing.T) {
	t.Parallel()

	sources, err := Resolve(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 1 || !sources[0].IsStdin() {
		t.Fatalf("Resolve() = %v, want single stdin source", sources)
	}
}

func TestResolvePlainPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", "{}")

	sources, err := Resolve([]string{a, "-"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Resolve() returned %d sources, want 2", len(sources))
	}
	if sources[0].Path != a || !sources[1].IsStdin() {
		t.Fatalf("Resolve() = %v", sources)
	}
}

func TestResolveMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Resolve([]string{"does-not-exist.json"}, ""); !errors.Is(err, ErrSource) {
		t.Fatalf("Resolve() error = %v, want ErrSource", err)
	}
}

func TestResolveGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.json", "{}")
	writeFile(t, dir, "b.json", "{}")
	writeFile(t, dir, "c.yaml", "{}")

	sources, err := Resolve([]string{filepath.Join(dir, "*.json")}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Resolve() returned %d sources, want 2", len(sources))
	}
	for _, src := range sources {
		if !strings.HasSuffix(src.Path, ".json") {
			t.Fatalf("glob matched %s", src.Path)
		}
	}
}

func TestResolveGlobWithoutMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := Resolve([]string{filepath.Join(dir, "*.json")}, ""); !errors.Is(err, ErrSource) {
		t.Fatalf("Resolve() error = %v, want ErrSource", err)
	}
}

func TestResolveDirectoryWithGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.json", "{}")
	writeFile(t, dir, "b.json", "{}")
	writeFile(t, dir, "c.yaml", "{}")

	sources, err := Resolve([]string{dir}, "*.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Resolve() returned %d sources, want 2", len(sources))
	}
}

func TestResolveDirectoryWithoutGlob(t *testing.T) {
	t.Parallel()

	if _, err := Resolve([]string{t.TempDir()}, ""); !errors.Is(err, ErrSource) {
		t.Fatalf("Resolve() error = %v, want ErrSource", err)
	}
}

func TestSourceEncoding(t *testing.T) {
	t.Parallel()

	src := Source{Path: "data.yml"}
	enc, err := src.Encoding()
	if err != nil || enc != encoding.YAML {
		t.Fatalf("Encoding() = (%s, %v), want (yaml, nil)", enc, err)
	}

	if _, err := (Source{Path: Stdin}).Encoding(); !errors.Is(err, encoding.ErrUnknownEncoding) {
		t.Fatalf("stdin Encoding() error = %v, want ErrUnknownEncoding", err)
	}
}

func TestSourceRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", `{"a":1}`)

	data, err := (Source{Path: path}).Read(nil)
	if err != nil || string(data) != `{"a":1}` {
		t.Fatalf("Read() = (%q, %v)", data, err)
	}

	data, err = (Source{Path: Stdin}).Read(strings.NewReader("from stdin"))
	if err != nil || string(data) != "from stdin" {
		t.Fatalf("stdin Read() = (%q, %v)", data, err)
	}
}

func TestSinkWrite(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	if err := (Sink{}).Write(&stdout, []byte("out")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "out" {
		t.Fatalf("stdout sink wrote %q", stdout.String())
	}

	path := filepath.Join(t.TempDir(), "result.json")
	if err := (Sink{Path: path}).Write(nil, []byte("{}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{}" {
		t.Fatalf("file sink contents = (%q, %v)", data, err)
	}
}
