// Package las reads Log ASCII Standard (LAS 1.2 / 2.0) well-log files.
//
// A LAS file is a sequence of sections introduced by a line starting with
// '~'. The header sections (~V version, ~W well, ~C curves, ~P parameters)
// hold "MNEM.UNIT VALUE : DESCRIPTION" lines, ~O holds free text and ~A
// holds the whitespace separated curve samples, one column per ~C entry.
package las

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"brb/internal/dataset"
)

// Section letters as they appear after '~'.
const (
	SectionVersion   = 'V'
	SectionWell      = 'W'
	SectionCurves    = 'C'
	SectionParameter = 'P'
	SectionOther     = 'O'
	SectionData      = 'A'
)

// HeaderItem is one "MNEM.UNIT VALUE : DESCRIPTION" line.
type HeaderItem struct {
	Mnemonic    string
	Unit        string
	Value       string
	Description string
}

// Section is an ordered list of header items.
type Section struct {
	Items []HeaderItem
}

// Get returns the first item with the given mnemonic, compared case-insensitively.
func (s Section) Get(mnemonic string) (HeaderItem, bool) {
	for _, item := range s.Items {
		if strings.EqualFold(item.Mnemonic, mnemonic) {
			return item, true
		}
	}
	return HeaderItem{}, false
}

// File is a parsed LAS file.
type File struct {
	Version    Section
	Well       Section
	Curves     Section
	Parameters Section
	Other      string
	// Unknown holds the raw lines of sections this reader does not interpret,
	// keyed by their full title line.
	Unknown map[string][]string

	names []string
	rows  [][]float64
}

// CurveNames returns the unique column names, in ~C order. Repeated
// mnemonics are suffixed with ":1", ":2", ... and an empty mnemonic is
// named UNKNOWN.
func (f *File) CurveNames() []string {
	return f.names
}

// Rows returns the number of data rows.
func (f *File) Rows() int {
	return len(f.rows)
}

// NullValue returns the ~W NULL value, if one is declared and numeric.
func (f *File) NullValue() (float64, bool) {
	item, ok := f.Well.Get("NULL")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(item.Value), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Wrapped reports whether ~V declares WRAP YES.
func (f *File) Wrapped() bool {
	item, ok := f.Version.Get("WRAP")
	return ok && strings.EqualFold(strings.TrimSpace(item.Value), "YES")
}

// ErrNoWellName is returned by WellName when ~W has no usable WELL item.
var ErrNoWellName = fmt.Errorf("no WELL item in ~W section")

// WellName returns the ~W WELL value.
func (f *File) WellName() (string, error) {
	item, ok := f.Well.Get("WELL")
	if !ok {
		return "", ErrNoWellName
	}
	name := strings.TrimSpace(item.Value)
	if name == "" {
		return "", fmt.Errorf("%w: WELL is empty", ErrNoWellName)
	}
	return name, nil
}

// Dataset returns the curve table with the first curve as index. Samples
// equal to the NULL value are NaN.
func (f *File) Dataset() (*dataset.Dataset, error) {
	if len(f.names) == 0 {
		return nil, fmt.Errorf("no curves defined")
	}

	null, hasNull := f.NullValue()
	values := make([][]float64, len(f.names))
	for c := range values {
		values[c] = make([]float64, len(f.rows))
	}
	for r, row := range f.rows {
		for c, v := range row {
			if hasNull && v == null {
				v = math.NaN()
			}
			values[c][r] = v
		}
	}

	index := dataset.Column{Name: f.names[0], Values: values[0]}
	columns := make([]dataset.Column, 0, len(f.names)-1)
	for c := 1; c < len(f.names); c++ {
		columns = append(columns, dataset.Column{Name: f.names[c], Values: values[c]})
	}
	return dataset.New(index, columns)
}

// uniqueNames applies the duplicate suffixing described on CurveNames.
func uniqueNames(items []HeaderItem) []string {
	counts := make(map[string]int, len(items))
	for _, item := range items {
		counts[curveName(item)]++
	}

	seen := make(map[string]int, len(items))
	names := make([]string, len(items))
	for i, item := range items {
		name := curveName(item)
		if counts[name] > 1 {
			seen[name]++
			name = fmt.Sprintf("%s:%d", name, seen[name])
		}
		names[i] = name
	}
	return names
}

func curveName(item HeaderItem) string {
	if item.Mnemonic == "" {
		return "UNKNOWN"
	}
	return item.Mnemonic
}
