package ml

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardises features with per-column mean and population
// standard deviation learned from a training matrix.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler learns column statistics from rows. Constant columns get a scale
// of 1 so they transform to zero instead of dividing by zero.
func FitScaler(rows [][]float64) (StandardScaler, error) {
	if len(rows) == 0 {
		return StandardScaler{}, fmt.Errorf("fit scaler: empty training matrix")
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return StandardScaler{}, fmt.Errorf("fit scaler: row %d has %d columns, want %d", i, len(row), width)
		}
	}

	mean := make([]float64, width)
	scale := make([]float64, width)
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		mean[j], scale[j] = stat.PopMeanStdDev(col, nil)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}

	return StandardScaler{Mean: mean, Scale: scale}, nil
}

// Transform returns a standardised copy of row.
func (s StandardScaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

// TransformAll standardises every row.
func (s StandardScaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}
