package dataset

import (
	"fmt"
	"strings"
)

// MissingSourceError indicates that a required dataset file is absent.
type MissingSourceError struct {
	File string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("missing source file: %s", e.File)
}

// SchemaError indicates that a present dataset file lacks required columns.
type SchemaError struct {
	File    string
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Columns, ", "))
}

// ValueError indicates that a cell holds a value the schema cannot accept,
// such as a non-numeric price or a rating outside 1-5.
type ValueError struct {
	File   string
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s row %d: column %q: %s (got %q)", e.File, e.Row, e.Column, e.Reason, e.Value)
}
