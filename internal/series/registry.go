package series

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Parser turns one file reference into a Record.
// Implementations fail with *NotFoundError when the reference cannot be
// resolved and with *ParseError when content cannot be decoded into an
// ordered (timestamp, value) sequence.
type Parser interface {
	Parse(ctx context.Context, ref string) (Record, error)
}

// ParseFunc adapts a function to the Parser interface.
type ParseFunc func(ctx context.Context, ref string) (Record, error)

// Parse implements Parser.
func (f ParseFunc) Parse(ctx context.Context, ref string) (Record, error) {
	return f(ctx, ref)
}

// Options configures a parser built from the registry. Fields not used by a
// given format are ignored by its factory.
type Options struct {
	// BaseDir is prepended to relative references.
	BaseDir string

	// CSV: positional time/value columns and header handling.
	TimeColumn  int
	ValueColumn int
	NoHeader    bool

	// JSON lines: field names for the timestamp and value.
	TimestampField string
	ValueField     string
}

// Factory builds a Parser for one format from shared options.
type Factory func(Options) (Parser, error)

var (
	registry   = make(map[string]Factory)
	registryMu sync.RWMutex
)

// Register adds a parser factory to the registry.
// Panics if a factory with the same format name is already registered.
func Register(format string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[format]; exists {
		panic(fmt.Sprintf("series format already registered: %s", format))
	}
	registry[format] = f
}

// NewParser builds a parser for the named format.
func NewParser(format string, opts Options) (Parser, error) {
	registryMu.RLock()
	f, ok := registry[format]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown series format %q (available: %v)", format, Formats())
	}
	return f(opts)
}

// Formats returns all registered format names, sorted for consistent output.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
