package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq float64, sr, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sr))
	}
	return out
}

func TestMFCCShape(t *testing.T) {
	sr := 41000
	samples := sine(440, sr, sr) // one second

	m := MFCC(samples, sr)
	require.NotEmpty(t, m)

	wantFrames := 1 + (len(samples)-frameSize)/hopSize
	assert.Len(t, m, wantFrames)
	for _, frame := range m {
		assert.Len(t, frame, NumCoefficients)
	}
}

func TestMFCCShorterInputYieldsFewerFrames(t *testing.T) {
	sr := 41000
	long := MFCC(sine(440, sr, sr), sr)
	short := MFCC(sine(440, sr, sr/2), sr)
	assert.Greater(t, len(long), len(short))
}

func TestMFCCDeterministic(t *testing.T) {
	sr := 41000
	samples := sine(330, sr, sr/4)
	assert.Equal(t, MFCC(samples, sr), MFCC(samples, sr))
}

func TestReduceAveragesCoefficientsPerFrame(t *testing.T) {
	m := [][]float64{
		{1, 2, 3},
		{4, 6, 8},
	}

	v := Reduce(m)
	require.Len(t, v, 2, "reduced length tracks the frame count")
	assert.InDelta(t, 2.0, v[0], 1e-12)
	assert.InDelta(t, 6.0, v[1], 1e-12)
}

func TestExpandDims(t *testing.T) {
	m := ExpandDims([]float64{1, 2, 3})
	assert.Equal(t, [][]float64{{1}, {2}, {3}}, m)
}
