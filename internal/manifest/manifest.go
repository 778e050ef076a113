// Package manifest loads and validates the YAML job definition that names
// the input table, the reference column, the series file format, and the
// outputs to write. One manifest describes one pipeline run.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/datashape/serieswide/internal/series"
)

// Output kinds accepted in a manifest.
const (
	KindCSV      = "csv"
	KindArrow    = "arrow"
	KindPostgres = "postgres"
)

// Output shapes accepted in a manifest. Wide pivots each series into one row
// of timestamp columns; long stacks every observation into its own row
// joined with the input row's fields.
const (
	ShapeWide = "wide"
	ShapeLong = "long"
)

// Manifest is one reshape job: where the input table lives, how series files
// are parsed, and where the wide table goes.
type Manifest struct {
	Input  Input  `yaml:"input"`
	Series Series `yaml:"series"`

	// Shape selects the output layout, "wide" (default) or "long".
	Shape string `yaml:"shape"`

	Outputs []Output `yaml:"outputs"`
}

// Input locates the input table and its reference column.
type Input struct {
	// Path is the CSV file holding the input table.
	Path string `yaml:"path"`

	// ReferenceColumn names the column whose cells reference series files.
	ReferenceColumn string `yaml:"reference_column"`
}

// Series configures the per-file parser.
type Series struct {
	// Format selects the registered parser ("csv" when empty).
	Format string `yaml:"format"`

	// BaseDir is prepended to relative file references.
	BaseDir string `yaml:"base_dir"`

	// CSV options.
	TimeColumn  int  `yaml:"time_column"`
	ValueColumn int  `yaml:"value_column"`
	NoHeader    bool `yaml:"no_header"`

	// JSON-lines options.
	TimestampField string `yaml:"timestamp_field"`
	ValueField     string `yaml:"value_field"`
}

// Output is one destination for the wide table.
type Output struct {
	Kind string `yaml:"kind"`

	// Path is the output file for csv and arrow outputs.
	Path string `yaml:"path"`

	// Table is the target table name for postgres outputs.
	Table string `yaml:"table"`
}

// Load reads and validates a manifest file. Relative base_dir and output
// paths are resolved against the manifest's directory.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: %s: %w", path, err)
	}
	m.resolveRelative(filepath.Dir(path))
	return m, nil
}

// Parse decodes and validates a manifest payload.
func Parse(data []byte) (Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Manifest{}, fmt.Errorf("manifest is empty")
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode: %w", err)
	}

	if m.Series.Format == "" {
		m.Series.Format = KindCSV
	}
	if m.Shape == "" {
		m.Shape = ShapeWide
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks that the manifest names everything a run needs.
func (m Manifest) Validate() error {
	if m.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if m.Input.ReferenceColumn == "" {
		return fmt.Errorf("input.reference_column is required")
	}
	if m.Shape != ShapeWide && m.Shape != ShapeLong {
		return fmt.Errorf("shape must be %q or %q, got %q", ShapeWide, ShapeLong, m.Shape)
	}
	if len(m.Outputs) == 0 {
		return fmt.Errorf("at least one output is required")
	}
	for i, out := range m.Outputs {
		switch out.Kind {
		case KindCSV, KindArrow:
			if out.Path == "" {
				return fmt.Errorf("outputs[%d]: path is required for %s outputs", i, out.Kind)
			}
		case KindPostgres:
			if out.Table == "" {
				return fmt.Errorf("outputs[%d]: table is required for postgres outputs", i)
			}
		default:
			return fmt.Errorf("outputs[%d]: unknown kind %q", i, out.Kind)
		}
	}
	return nil
}

// ParserOptions maps the manifest's series section onto parser options.
func (m Manifest) ParserOptions() series.Options {
	return series.Options{
		BaseDir:        m.Series.BaseDir,
		TimeColumn:     m.Series.TimeColumn,
		ValueColumn:    m.Series.ValueColumn,
		NoHeader:       m.Series.NoHeader,
		TimestampField: m.Series.TimestampField,
		ValueField:     m.Series.ValueField,
	}
}

// resolveRelative anchors relative paths to the manifest's directory so a
// job behaves the same regardless of the working directory it runs from.
func (m *Manifest) resolveRelative(dir string) {
	if dir == "" || dir == "." {
		return
	}
	if m.Input.Path != "" && !filepath.IsAbs(m.Input.Path) {
		m.Input.Path = filepath.Join(dir, m.Input.Path)
	}
	if m.Series.BaseDir != "" && !filepath.IsAbs(m.Series.BaseDir) {
		m.Series.BaseDir = filepath.Join(dir, m.Series.BaseDir)
	}
	for i := range m.Outputs {
		if m.Outputs[i].Path != "" && !filepath.IsAbs(m.Outputs[i].Path) {
			m.Outputs[i].Path = filepath.Join(dir, m.Outputs[i].Path)
		}
	}
}
