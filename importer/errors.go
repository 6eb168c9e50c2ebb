package importer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn  = errors.New("missing column")
	ErrMalformedInput = errors.New("malformed input")
)

// MissingColumnError reports a required input column absent from the header
// row.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// MalformedInputError reports a retained row whose value cannot be
// converted. The whole run is aborted.
type MalformedInputError struct {
	Row      int
	Field    string
	Value    string
	PersonID string
	Project  string
	Err      error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("row %d (person %q, project %q): malformed %s %q: %v",
		e.Row, e.PersonID, e.Project, e.Field, e.Value, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
