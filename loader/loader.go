// Package loader reads Pin1Yin1 source files and parses them.
//
// A Loader carries the parser configuration (grammar tables and nesting
// ceiling) so that every file it loads is parsed the same way. Files can be
// loaded one at a time, concurrently, or watched for changes.
//
// Example usage:
//
//	ldr := loader.New(loader.WithMaxDepth(64))
//	result, err := ldr.Load(ctx, "main.py1")
//
//	// Parse many files concurrently; results come back in input order
//	results, err := ldr.LoadAll(ctx, "a.py1", "b.py1")
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
	"github.com/pin1yin1/pin1yin1/parser"
	"github.com/pin1yin1/pin1yin1/telemetry"
)

// DefaultWatchDelay is how long Watch waits for a burst of file system
// events to settle before reporting a change.
const DefaultWatchDelay = 100 * time.Millisecond

// Loader handles loading and parsing of Pin1Yin1 files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithGrammar(cfg), WithConcurrency(4))
type Loader struct {
	// Grammar is the keyword and operator tables files are parsed with.
	Grammar *grammar.Config

	// MaxDepth is the nesting ceiling; 0 uses parser.DefaultMaxDepth.
	MaxDepth int

	// Concurrency bounds how many files LoadAll parses at once.
	// 0 uses runtime.GOMAXPROCS.
	Concurrency int

	// WatchDelay is the debounce delay of Watch.
	WatchDelay time.Duration
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithGrammar sets the tables files are parsed with.
func WithGrammar(cfg *grammar.Config) Option {
	return func(l *Loader) {
		l.Grammar = cfg
	}
}

// WithMaxDepth sets the nesting ceiling passed to the parser.
func WithMaxDepth(depth int) Option {
	return func(l *Loader) {
		l.MaxDepth = depth
	}
}

// WithConcurrency bounds the number of files LoadAll parses at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		l.Concurrency = n
	}
}

// WithWatchDelay sets the debounce delay of Watch.
func WithWatchDelay(d time.Duration) Option {
	return func(l *Loader) {
		l.WatchDelay = d
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		WatchDelay: DefaultWatchDelay,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Result is a successfully parsed file.
type Result struct {
	// Filename is the name positions are reported against.
	Filename string

	// Source is the decoded text of the file.
	Source *parser.Source

	// Program is the parsed syntax tree.
	Program *ast.Program
}

// FileResult is the outcome of loading one file with LoadAll. Exactly one
// of Result and Err is set.
type FileResult struct {
	Filename string
	Result   *Result
	Err      error
}

func (l *Loader) parser(filename string) *parser.Parser {
	return parser.New(
		parser.WithGrammar(l.Grammar),
		parser.WithMaxDepth(l.MaxDepth),
		parser.WithFilename(filename),
	)
}

// Load reads and parses filename.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses data as if it had been read from filename. Parse
// failures are returned as *parser.ParseError.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	timer := telemetry.StartTimer(ctx, "loader.load "+displayName(filename))
	defer timer.End()
	ctx = telemetry.WithRootTimer(ctx, timer)

	p := l.parser(filename)
	src, err := p.Decode(ctx, data)
	if err != nil {
		return nil, err
	}

	prog, err := p.ParseProgram(ctx, src)
	if err != nil {
		return nil, err
	}

	return &Result{Filename: filename, Source: src, Program: prog}, nil
}

// LoadAll loads every file concurrently, at most Concurrency at a time.
// Results are returned in input order and parse failures are reported per
// file; the returned error is only set when ctx is cancelled.
func (l *Loader) LoadAll(ctx context.Context, filenames ...string) ([]FileResult, error) {
	results := make([]FileResult, len(filenames))

	limit := l.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, filename := range filenames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := l.Load(gctx, filename)
			results[i] = FileResult{Filename: filename, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func displayName(name string) string {
	if name == "" {
		return "<input>"
	}
	return filepath.Base(name)
}
