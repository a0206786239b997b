package dataset

import (
	"github.com/montanaflynn/stats"
)

// CurveSummary describes the present (non-NaN) samples of one column.
type CurveSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
}

// Describe summarizes the index and every data column, in header order.
// Columns without samples report only Count and Missing.
func Describe(d *Dataset) ([]CurveSummary, error) {
	cols := append([]Column{d.index}, d.columns...)
	out := make([]CurveSummary, 0, len(cols))
	for _, col := range cols {
		s, err := summarize(col)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func summarize(col Column) (CurveSummary, error) {
	data := stats.Float64Data(Present(col))
	s := CurveSummary{
		Name:    col.Name,
		Count:   data.Len(),
		Missing: len(col.Values) - data.Len(),
	}
	if data.Len() == 0 {
		return s, nil
	}

	var err error
	if s.Min, err = data.Min(); err != nil {
		return s, err
	}
	if s.Max, err = data.Max(); err != nil {
		return s, err
	}
	if s.Mean, err = data.Mean(); err != nil {
		return s, err
	}
	if s.Median, err = data.Median(); err != nil {
		return s, err
	}
	return s, nil
}
