package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/martinohmann/dts/internal/encoding"
	"github.com/martinohmann/dts/internal/highlight"
	"github.com/martinohmann/dts/internal/source"
	"github.com/martinohmann/dts/internal/value"
)

// Runner executes one invocation: decode all inputs, apply the
// transformation pipeline, encode and write the result.
type Runner struct {
	cfg    *Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates a runner writing to the given streams.
func New(cfg *Config, stdin io.Reader, stdout io.Writer, stderr io.Writer) *Runner {
	return &Runner{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}
}

// Run performs the full decode, transform, encode cycle.
func (r *Runner) Run(ctx context.Context) error {
	sources, err := source.Resolve(r.cfg.Paths, r.cfg.Glob)
	if err != nil {
		return err
	}

	docs, err := r.decodeAll(ctx, sources)
	if err != nil {
		return err
	}

	v := r.combine(sources, docs)

	if r.cfg.Pipeline != nil {
		v, err = r.cfg.Pipeline.Apply(v)
		if err != nil {
			return err
		}
	}

	return r.write(v)
}

type document struct {
	value value.Value
	err   error
}

// decodeAll decodes the sources concurrently, keeping results in source
// order. With ContinueOnError a failed source is reported as a warning and
// dropped from the combined result.
func (r *Runner) decodeAll(ctx context.Context, sources []source.Source) ([]document, error) {
	docs := make([]document, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			v, err := r.decode(src)
			if err != nil {
				if r.cfg.ContinueOnError {
					docs[i] = document{err: err}
					return nil
				}
				return err
			}
			docs[i] = document{value: v}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, doc := range docs {
		if doc.err != nil {
			fmt.Fprintf(r.stderr, "warning: skipping %s: %v\n", sources[i], doc.err)
		}
	}
	return docs, nil
}

func (r *Runner) decode(src source.Source) (value.Value, error) {
	data, err := src.Read(r.stdin)
	if err != nil {
		return value.Null(), err
	}

	enc := r.cfg.InputEncoding
	if enc == "" {
		if inferred, err := src.Encoding(); err == nil {
			enc = inferred
		} else {
			enc = encoding.JSON
		}
	}

	v, err := encoding.Decode(enc, data, r.cfg.DecodeOptions)
	if err != nil {
		return value.Null(), fmt.Errorf("%s: %w", src, err)
	}
	return v, nil
}

// combine folds the decoded documents into a single value: one input passes
// through, several collect into an array, and FilePaths keys them by source
// path instead.
func (r *Runner) combine(sources []source.Source, docs []document) value.Value {
	if r.cfg.FilePaths {
		obj := value.NewObject()
		for i, doc := range docs {
			if doc.err != nil {
				continue
			}
			obj.Set(sources[i].String(), doc.value)
		}
		return value.Obj(obj)
	}

	if len(sources) == 1 {
		return docs[0].value
	}

	items := make([]value.Value, 0, len(docs))
	for _, doc := range docs {
		if doc.err != nil {
			continue
		}
		items = append(items, doc.value)
	}
	return value.Array(items...)
}

func (r *Runner) write(v value.Value) error {
	sink := source.Sink{Path: r.cfg.OutputFile}

	enc := r.cfg.OutputEncoding
	if enc == "" {
		if inferred, err := sink.Encoding(); err == nil {
			enc = inferred
		} else {
			enc = encoding.JSON
		}
	}

	data, err := encoding.Encode(enc, v, r.cfg.EncodeOptions)
	if err != nil {
		return err
	}

	if !r.cfg.NoNewline && !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}

	if sink.IsStdout() && highlight.Enabled(r.cfg.Color, r.stdout) {
		data = highlight.Highlight(enc, data)
	}

	return sink.Write(r.stdout, data)
}
