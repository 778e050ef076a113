package series

// errors.go defines the two failure kinds a parser may surface. Both carry
// the file reference so the caller can localize the fault without re-running.

import "fmt"

// NotFoundError reports a reference that could not be resolved to content.
type NotFoundError struct {
	Ref string
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("series file not found: %s: %v", e.Ref, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError reports content that could not be decoded into an ordered
// (timestamp, value) sequence, including within-file invariant violations.
type ParseError struct {
	Ref    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Ref, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Ref, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
