package output

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"brb/internal/dataset"
)

// CSVEncoder writes a header row followed by one record per sample.
// Missing samples are written as empty cells.
type CSVEncoder struct{}

func (CSVEncoder) Encode(w io.Writer, ds *dataset.Dataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ds.Header()); err != nil {
		return err
	}

	record := make([]string, len(ds.Columns())+1)
	for i := 0; i < ds.Len(); i++ {
		for c, v := range ds.Row(i) {
			record[c] = FormatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatValue renders v in its shortest round-trip form. Whole numbers keep
// a trailing ".0" so a float column reads as one; NaN is empty.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if math.IsInf(v, 0) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
