package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn is matched by MissingColumnError.
	ErrMissingColumn = errors.New("catalog: missing column")

	// ErrEmptyCatalog is returned when the source has no header row.
	ErrEmptyCatalog = errors.New("catalog: no header row")

	// ErrNoDatasets is returned when a source lists no CSV files.
	ErrNoDatasets = errors.New("catalog: no CSV datasets found")

	// ErrInvalidDatasetName is returned for names that are empty or carry a path.
	ErrInvalidDatasetName = errors.New("catalog: invalid dataset name")

	// ErrInvalidChoice is returned by Choose for unusable answers.
	ErrInvalidChoice = errors.New("catalog: invalid dataset choice")
)

// MissingColumnError reports a field whose header could not be found.
type MissingColumnError struct {
	Field   string
	Aliases []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("catalog: no column for %s (looked for %s)", e.Field, strings.Join(e.Aliases, ", "))
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// RecordError reports a record that could not be parsed.
type RecordError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("catalog: line %d: invalid %s %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
