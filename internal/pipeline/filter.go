package pipeline

import (
	"brb/internal/dataset"
	"brb/internal/errors"
)

// selectColumns restricts ds to the requested columns. An empty request
// keeps every column. The index name is dropped from the request since the
// index is always written, unknown names produce one warning each, and the
// kept columns follow the dataset's order.
func selectColumns(ds *dataset.Dataset, requested []string) (*dataset.Dataset, []Warning) {
	if len(requested) == 0 {
		return ds, nil
	}

	var (
		keys     []string
		warnings []Warning
		warned   = make(map[string]bool)
	)
	for _, name := range requested {
		if name == ds.IndexName() {
			continue
		}
		if !ds.Has(name) {
			if !warned[name] {
				warned[name] = true
				err := errors.NewUnknownColumnError(name)
				warnings = append(warnings, newWarning(err, err.Message))
			}
			continue
		}
		keys = append(keys, name)
	}

	return ds.Select(keys), warnings
}
