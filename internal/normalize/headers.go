// Package normalize relabels dataset columns with canonical names.
package normalize

import (
	"fmt"

	"brb/internal/dataset"
	"brb/internal/parser"
)

// Conflict records a column that was not relabelled because its canonical
// name is already taken by the index or another column.
type Conflict struct {
	Column    string
	Canonical string
	Label     string
}

func (c Conflict) String() string {
	return fmt.Sprintf("column %s maps to %s which is already present, kept as %s", c.Column, c.Canonical, c.Label)
}

// Headers replaces every data column name that is an alias in table with its
// canonical name. Unknown names pass through, order and count are kept and
// the index column is never relabelled. Neither ds nor table is modified.
//
// Column names stay unique and every label is either the column's own name
// or a canonical name of table. The index and every original column name are
// reserved: a column whose canonical name is reserved or already taken keeps
// its own name and is reported as a Conflict.
func Headers(ds *dataset.Dataset, table *parser.AliasTable) (*dataset.Dataset, []Conflict, error) {
	if table == nil {
		return ds, nil, nil
	}

	reverse := table.Reverse()
	names := ds.ColumnNames()

	used := map[string]bool{ds.IndexName(): true}
	for _, name := range names {
		used[name] = true
	}

	var conflicts []Conflict
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = name
		target, ok := reverse[name]
		if !ok || target == name {
			continue
		}
		if used[target] {
			conflicts = append(conflicts, Conflict{Column: name, Canonical: target, Label: name})
			continue
		}
		labels[i] = target
		used[target] = true
	}

	out, err := ds.Rename(labels)
	if err != nil {
		return nil, nil, err
	}
	return out, conflicts, nil
}
