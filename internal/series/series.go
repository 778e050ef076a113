// Package series defines the per-entity time series record, the pluggable
// parser contract that turns a file reference into a record, and the format
// registry through which parsers are selected by name.
package series

import (
	"fmt"
	"strconv"
	"time"
)

// Point is a single (timestamp, value) observation.
type Point struct {
	Timestamp string
	Value     float64
}

// Record is one parsed series: the reference it came from plus its ordered
// observations. Timestamps within a record are unique; when every label is
// numeric or RFC 3339, they are also strictly increasing.
type Record struct {
	Ref    string
	Points []Point
}

// Len returns the number of observations.
func (r Record) Len() int {
	return len(r.Points)
}

// Timestamps returns the ordered timestamp labels.
func (r Record) Timestamps() []string {
	out := make([]string, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Timestamp
	}
	return out
}

// Values returns the ordered values.
func (r Record) Values() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Value
	}
	return out
}

// checkLabels enforces the within-record timestamp invariants: labels must be
// unique, and when they all carry a usable order (numeric or RFC 3339) they
// must be strictly increasing. Plain text labels are only checked for
// uniqueness.
func checkLabels(points []Point) error {
	seen := make(map[string]int, len(points))
	for i, p := range points {
		if prev, dup := seen[p.Timestamp]; dup {
			return fmt.Errorf("duplicate timestamp %q at positions %d and %d", p.Timestamp, prev, i)
		}
		seen[p.Timestamp] = i
	}

	if nums, ok := numericLabels(points); ok {
		for i := 1; i < len(nums); i++ {
			if nums[i] <= nums[i-1] {
				return fmt.Errorf("timestamps not strictly increasing at position %d (%q)", i, points[i].Timestamp)
			}
		}
		return nil
	}

	if times, ok := timeLabels(points); ok {
		for i := 1; i < len(times); i++ {
			if !times[i].After(times[i-1]) {
				return fmt.Errorf("timestamps not strictly increasing at position %d (%q)", i, points[i].Timestamp)
			}
		}
	}

	return nil
}

func numericLabels(points []Point) ([]float64, bool) {
	nums := make([]float64, len(points))
	for i, p := range points {
		n, err := strconv.ParseFloat(p.Timestamp, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}

func timeLabels(points []Point) ([]time.Time, bool) {
	times := make([]time.Time, len(points))
	for i, p := range points {
		t, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			return nil, false
		}
		times[i] = t
	}
	return times, true
}
