// Package dataset holds the tabular model exported by brb: an index column
// (depth or time) followed by an ordered set of uniquely named data columns.
package dataset

import (
	"fmt"
	"math"
)

// Column is a named series of values. Missing samples are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Dataset is an index column plus ordered data columns of equal length.
// Column names, index included, are unique.
type Dataset struct {
	index   Column
	columns []Column
	byName  map[string]int
}

// New builds a Dataset. It fails when a name is repeated or when a column
// length differs from the index length.
func New(index Column, columns []Column) (*Dataset, error) {
	ds := &Dataset{
		index:   index,
		columns: columns,
		byName:  make(map[string]int, len(columns)),
	}
	if index.Name == "" {
		return nil, fmt.Errorf("index column has no name")
	}
	for i, col := range columns {
		if col.Name == index.Name {
			return nil, fmt.Errorf("column %q duplicates the index name", col.Name)
		}
		if _, dup := ds.byName[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if len(col.Values) != len(index.Values) {
			return nil, fmt.Errorf("column %q has %d values, index has %d", col.Name, len(col.Values), len(index.Values))
		}
		ds.byName[col.Name] = i
	}
	return ds, nil
}

// IndexName returns the name of the index column.
func (d *Dataset) IndexName() string {
	return d.index.Name
}

// Index returns the index column.
func (d *Dataset) Index() Column {
	return d.index
}

// Columns returns the data columns in order. The index is not included.
func (d *Dataset) Columns() []Column {
	return d.columns
}

// ColumnNames returns the data column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Has reports whether name is a data column. The index is not a data column.
func (d *Dataset) Has(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// Column returns the data column with the given name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.index.Values)
}

// Rename returns a copy of the dataset whose data columns carry the given
// labels. labels must have one entry per data column. Values are shared.
func (d *Dataset) Rename(labels []string) (*Dataset, error) {
	if len(labels) != len(d.columns) {
		return nil, fmt.Errorf("rename: got %d labels for %d columns", len(labels), len(d.columns))
	}
	cols := make([]Column, len(d.columns))
	for i, col := range d.columns {
		cols[i] = Column{Name: labels[i], Values: col.Values}
	}
	return New(d.index, cols)
}

// Select returns a copy restricted to the named data columns. The result
// keeps the dataset's column order, not the order of names. Names that are
// not data columns are ignored.
func (d *Dataset) Select(names []string) *Dataset {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}

	out := &Dataset{
		index:  d.index,
		byName: make(map[string]int),
	}
	for _, col := range d.columns {
		if _, ok := want[col.Name]; !ok {
			continue
		}
		out.byName[col.Name] = len(out.columns)
		out.columns = append(out.columns, col)
	}
	return out
}

// Row returns the index value followed by the data values of row i.
func (d *Dataset) Row(i int) []float64 {
	row := make([]float64, 0, len(d.columns)+1)
	row = append(row, d.index.Values[i])
	for _, col := range d.columns {
		row = append(row, col.Values[i])
	}
	return row
}

// Header returns the index name followed by the data column names.
func (d *Dataset) Header() []string {
	return append([]string{d.index.Name}, d.ColumnNames()...)
}

// Present returns the values of col that are not NaN.
func Present(col Column) []float64 {
	out := make([]float64, 0, len(col.Values))
	for _, v := range col.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
