// Package cli wires flag parsing, input discovery, decoding, transformation
// and encoding into the dts command.
package cli

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/kong"

	"github.com/martinohmann/dts/internal/encoding"
	"github.com/martinohmann/dts/internal/highlight"
	"github.com/martinohmann/dts/internal/transform"
)

// ErrUsage indicates invalid flag combinations or values.
var ErrUsage = errors.New("usage error")

// Options is the raw command line surface.
type Options struct {
	Paths []string `arg:"" optional:"" help:"Input files or glob patterns; '-' or no arguments reads stdin."`

	InputEncoding  string `short:"i" help:"Input encoding; inferred from the file extension when omitted, JSON as last resort." placeholder:"ENCODING"`
	OutputEncoding string `short:"o" help:"Output encoding; inferred from the output file extension when omitted, JSON as last resort." placeholder:"ENCODING"`
	OutputFile     string `short:"O" help:"Write output to this file instead of stdout." placeholder:"PATH" type:"path"`

	Transform string `short:"t" help:"Transformation expression applied between decoding and encoding, e.g. 'select(\"items\").dedup'." placeholder:"EXPRESSION"`

	Glob string `help:"Pattern selecting files within directory arguments, e.g. '*.json'." placeholder:"PATTERN"`

	FilePaths       bool `help:"Key the combined result of multiple inputs by source file path instead of collecting an array."`
	ContinueOnError bool `help:"Skip inputs that fail to decode with a warning instead of aborting."`

	Compact   bool   `short:"c" help:"Emit compact instead of pretty output where the encoding distinguishes the two."`
	NoNewline bool   `short:"n" help:"Do not append a trailing newline to the output."`
	Color     string `enum:"auto,always,never" default:"auto" help:"When to color output: auto, always or never."`

	CSVDelimiter      string `name:"csv-delimiter" default:"," help:"CSV field delimiter for input and output."`
	CSVHeadersAsKeys  bool   `name:"csv-headers-as-keys" help:"Decode CSV rows into objects keyed by the header row."`
	CSVWithoutHeaders bool   `name:"csv-without-headers" help:"Treat the first CSV row as data instead of headers."`
	KeysAsCSVHeaders  bool   `name:"keys-as-csv-headers" help:"Encode an array of objects as CSV with a header row from the first object's keys."`

	TextSplitPattern  string `help:"Regular expression to split text input on instead of newlines." placeholder:"REGEX"`
	TextJoinSeparator string `help:"Separator joining array items in text output, newline when omitted." placeholder:"SEP"`
}

// Config is the validated runtime configuration derived from Options.
type Config struct {
	Paths           []string
	Glob            string
	InputEncoding   encoding.Encoding
	OutputEncoding  encoding.Encoding
	OutputFile      string
	Pipeline        transform.Pipeline
	FilePaths       bool
	ContinueOnError bool
	Compact         bool
	NoNewline       bool
	Color           highlight.Mode
	DecodeOptions   encoding.DecodeOptions
	EncodeOptions   encoding.EncodeOptions
}

// Parse parses command line arguments into a validated configuration. Args
// excludes the program name.
func Parse(args []string) (*Config, error) {
	var opts Options

	parser, err := kong.New(&opts,
		kong.Name("dts"),
		kong.Description("Deserialize, transform and serialize structured data between encodings."),
		kong.UsageOnError(),
	)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return opts.Validate()
}

// Validate resolves encodings, compiles the transformation expression and
// checks flag values.
func (o *Options) Validate() (*Config, error) {
	cfg := &Config{
		Paths:           o.Paths,
		Glob:            o.Glob,
		OutputFile:      o.OutputFile,
		FilePaths:       o.FilePaths,
		ContinueOnError: o.ContinueOnError,
		Compact:         o.Compact,
		NoNewline:       o.NoNewline,
		Color:           highlight.Mode(o.Color),
	}

	if o.InputEncoding != "" {
		enc, err := encoding.Parse(o.InputEncoding)
		if err != nil {
			return nil, err
		}
		cfg.InputEncoding = enc
	}

	if o.OutputEncoding != "" {
		enc, err := encoding.Parse(o.OutputEncoding)
		if err != nil {
			return nil, err
		}
		cfg.OutputEncoding = enc
	}

	if o.Transform != "" {
		pipeline, err := transform.Parse(o.Transform)
		if err != nil {
			return nil, err
		}
		cfg.Pipeline = pipeline
	}

	delimiter, size := utf8.DecodeRuneInString(o.CSVDelimiter)
	if size == 0 || size != len(o.CSVDelimiter) || delimiter == utf8.RuneError {
		return nil, fmt.Errorf("%w: CSV delimiter must be a single character", ErrUsage)
	}

	cfg.DecodeOptions = encoding.DecodeOptions{
		CSVDelimiter:      delimiter,
		CSVHeadersAsKeys:  o.CSVHeadersAsKeys,
		CSVWithoutHeaders: o.CSVWithoutHeaders,
		TextSplitPattern:  o.TextSplitPattern,
	}
	cfg.EncodeOptions = encoding.EncodeOptions{
		Pretty:            !o.Compact,
		CSVDelimiter:      delimiter,
		KeysAsCSVHeaders:  o.KeysAsCSVHeaders,
		TextJoinSeparator: o.TextJoinSeparator,
	}

	return cfg, nil
}
