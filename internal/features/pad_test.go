package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(vals ...float64) [][]float64 {
	return ExpandDims(vals)
}

func TestPadPreservesTopLeftAndZeroFills(t *testing.T) {
	in := [][][]float64{
		column(1, 2),
		column(3, 4, 5, 6),
		column(7),
	}

	batch, err := Pad(in)
	require.NoError(t, err)

	samples, rows, cols := batch.Shape()
	assert.Equal(t, 3, samples)
	assert.Equal(t, 4, rows)
	assert.Equal(t, 1, cols)

	// originals intact in the top-left region
	assert.Equal(t, 1.0, batch[0][0][0])
	assert.Equal(t, 2.0, batch[0][1][0])
	assert.Equal(t, 6.0, batch[1][3][0])
	assert.Equal(t, 7.0, batch[2][0][0])

	// everything past the original rows is exactly zero
	assert.Equal(t, 0.0, batch[0][2][0])
	assert.Equal(t, 0.0, batch[0][3][0])
	assert.Equal(t, 0.0, batch[2][1][0])
	assert.Equal(t, 0.0, batch[2][3][0])
}

func TestPadMaxSelectedByRowCountOnly(t *testing.T) {
	// the widest input does not win if a longer one exists; a wider input
	// than the selected shape cannot be copied
	in := [][][]float64{
		{{1, 2, 3}},
		column(4, 5),
	}

	_, err := Pad(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestPadEmptyBatch(t *testing.T) {
	_, err := Pad(nil)
	assert.Error(t, err)
}

func TestPadSingleInput(t *testing.T) {
	batch, err := Pad([][][]float64{column(9, 8)})
	require.NoError(t, err)
	samples, rows, cols := batch.Shape()
	assert.Equal(t, 1, samples)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, cols)
	assert.Equal(t, 9.0, batch[0][0][0])
}
