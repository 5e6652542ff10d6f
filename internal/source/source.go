// Package source resolves where documents come from and go to: positional
// file arguments with glob expansion, stdin via `-`, and output sinks.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/martinohmann/dts/internal/encoding"
)

// ErrSource indicates an input that cannot be resolved or read.
var ErrSource = errors.New("source error")

// Stdin is the positional argument naming standard input.
const Stdin = "-"

// Source is a single resolved input.
type Source struct {
	// Path is the file path, or `-` for stdin.
	Path string
}

// IsStdin reports whether the source reads standard input.
func (s Source) IsStdin() bool {
	return s.Path == Stdin
}

// Encoding infers the source encoding from its file extension. Stdin has no
// extension so inference always fails for it.
func (s Source) Encoding() (encoding.Encoding, error) {
	if s.IsStdin() {
		return "", fmt.Errorf("%w: cannot infer encoding for stdin", encoding.ErrUnknownEncoding)
	}
	return encoding.FromPath(s.Path)
}

// Read returns the source contents.
func (s Source) Read(stdin io.Reader) ([]byte, error) {
	if s.IsStdin() {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %v", ErrSource, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSource, err)
	}
	return data, nil
}

// String returns the path, with stdin spelled out.
func (s Source) String() string {
	if s.IsStdin() {
		return "<stdin>"
	}
	return s.Path
}

// Resolve expands the positional arguments into concrete sources. Arguments
// containing glob metacharacters are expanded; a glob matching nothing is an
// error, as is a plain path that does not exist. A directory argument is
// expanded with pattern, which must be non-empty in that case. No arguments
// means stdin.
func Resolve(args []string, pattern string) ([]Source, error) {
	if len(args) == 0 {
		return []Source{{Path: Stdin}}, nil
	}

	var sources []Source
	for _, arg := range args {
		if arg == Stdin {
			sources = append(sources, Source{Path: Stdin})
			continue
		}

		if isGlobPattern(arg) {
			expanded, err := glob(arg)
			if err != nil {
				return nil, err
			}
			sources = append(sources, expanded...)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSource, err)
		}

		if info.IsDir() {
			if pattern == "" {
				return nil, fmt.Errorf("%w: %s is a directory, use --glob to select files within it", ErrSource, arg)
			}
			expanded, err := glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, err
			}
			sources = append(sources, expanded...)
			continue
		}

		sources = append(sources, Source{Path: arg})
	}
	return sources, nil
}

func glob(pattern string) ([]Source, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid glob pattern %q: %v", ErrSource, pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: glob pattern %q matched no files", ErrSource, pattern)
	}

	sources := make([]Source, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSource, err)
		}
		if info.IsDir() {
			continue
		}
		sources = append(sources, Source{Path: match})
	}
	return sources, nil
}

func isGlobPattern(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// Sink is a single resolved output destination.
type Sink struct {
	// Path is the file path, or empty for stdout.
	Path string
}

// IsStdout reports whether the sink writes standard output.
func (s Sink) IsStdout() bool {
	return s.Path == "" || s.Path == Stdin
}

// Encoding infers the sink encoding from its file extension.
func (s Sink) Encoding() (encoding.Encoding, error) {
	if s.IsStdout() {
		return "", fmt.Errorf("%w: cannot infer encoding for stdout", encoding.ErrUnknownEncoding)
	}
	return encoding.FromPath(s.Path)
}

// Write stores data at the sink, writing to the given writer when the sink
// is stdout.
func (s Sink) Write(stdout io.Writer, data []byte) error {
	if s.IsStdout() {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrSource, err)
		}
		return nil
	}

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrSource, err)
	}
	return nil
}
