package portfolio

import "fmt"

// SchemaError reports a required column missing from the file header.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// Dataset is an in-memory portfolio loaded from a single delimited file.
// Loading is lenient about absent columns; each computation declares the
// columns it needs via Require and fails before computing anything.
type Dataset struct {
	header  []string
	records []Record
	present map[string]bool
	delim   rune
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns the records in file order. Callers must not mutate the
// returned slice.
func (d *Dataset) Records() []Record { return d.records }

// Header returns the original header row.
func (d *Dataset) Header() []string { return d.header }

// HasColumn reports whether a recognized column was present in the header.
func (d *Dataset) HasColumn(name string) bool { return d.present[name] }

// MissingColumns returns the recognized columns absent from the header, in
// canonical order.
func (d *Dataset) MissingColumns() []string {
	var out []string
	for _, c := range RequiredColumns() {
		if !d.present[c] {
			out = append(out, c)
		}
	}
	return out
}

// Require returns a *SchemaError naming the first missing column, checked
// in the order given.
func (d *Dataset) Require(cols ...string) error {
	for _, c := range cols {
		if !d.present[c] {
			return &SchemaError{Column: c}
		}
	}
	return nil
}

// Head returns a dataset restricted to the first n records. n <= 0 or
// n >= Len() yields the dataset unchanged. The returned dataset shares
// backing storage with the receiver.
func (d *Dataset) Head(n int) *Dataset {
	if n <= 0 || n >= len(d.records) {
		return d
	}
	return &Dataset{
		header:  d.header,
		records: d.records[:n],
		present: d.present,
		delim:   d.delim,
	}
}
