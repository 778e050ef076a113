package series

// jsonl.go implements the JSON-lines series format: one JSON object per
// line, with configurable timestamp and value field names.

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Default field names for the JSON-lines format.
const (
	DefaultTimestampField = "timestamp"
	DefaultValueField     = "value"
)

func init() {
	Register("jsonl", func(opts Options) (Parser, error) {
		return NewJSONLParser(opts), nil
	})
}

// JSONLParser parses one series file in JSON-lines form.
type JSONLParser struct {
	baseDir        string
	timestampField string
	valueField     string
}

// NewJSONLParser builds a JSON-lines parser from options, applying the
// default field names when unset.
func NewJSONLParser(opts Options) *JSONLParser {
	p := &JSONLParser{
		baseDir:        opts.BaseDir,
		timestampField: opts.TimestampField,
		valueField:     opts.ValueField,
	}
	if p.timestampField == "" {
		p.timestampField = DefaultTimestampField
	}
	if p.valueField == "" {
		p.valueField = DefaultValueField
	}
	return p
}

// Parse implements Parser.
func (p *JSONLParser) Parse(ctx context.Context, ref string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	path := ref
	if p.baseDir != "" && !filepath.IsAbs(ref) {
		path = filepath.Join(p.baseDir, ref)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, &NotFoundError{Ref: ref, Err: err}
		}
		return Record{}, &ParseError{Ref: ref, Reason: "open failed", Err: err}
	}
	defer f.Close()

	rec, err := p.parse(ctx, ref, f)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (p *JSONLParser) parse(ctx context.Context, ref string, r io.Reader) (Record, error) {
	var points []Point

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}
		line++

		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			return Record{}, &ParseError{Ref: ref, Reason: fmt.Sprintf("line %d is not a JSON object", line), Err: err}
		}

		tsRaw, ok := obj[p.timestampField]
		if !ok {
			return Record{}, &ParseError{Ref: ref, Reason: fmt.Sprintf("line %d is missing field %q", line, p.timestampField)}
		}
		ts, err := timestampLabel(tsRaw)
		if err != nil {
			return Record{}, &ParseError{Ref: ref, Reason: fmt.Sprintf("line %d field %q: %v", line, p.timestampField, err)}
		}

		vRaw, ok := obj[p.valueField]
		if !ok {
			return Record{}, &ParseError{Ref: ref, Reason: fmt.Sprintf("line %d is missing field %q", line, p.valueField)}
		}
		v, ok := vRaw.(float64)
		if !ok {
			return Record{}, &ParseError{Ref: ref, Reason: fmt.Sprintf("line %d field %q is not numeric", line, p.valueField)}
		}

		points = append(points, Point{Timestamp: ts, Value: v})
	}
	if err := sc.Err(); err != nil {
		return Record{}, &ParseError{Ref: ref, Reason: "reading lines", Err: err}
	}

	if err := checkLabels(points); err != nil {
		return Record{}, &ParseError{Ref: ref, Reason: err.Error()}
	}

	return Record{Ref: ref, Points: points}, nil
}

// timestampLabel converts a decoded JSON timestamp field to its label form.
// Strings are taken verbatim; numbers are formatted the same way every run so
// identical inputs always yield identical column labels.
func timestampLabel(v any) (string, error) {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return "", fmt.Errorf("empty timestamp")
		}
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported timestamp type %T", v)
	}
}
