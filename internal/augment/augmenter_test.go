package augment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dygy/guitarset/internal/effects"
	apperrors "github.com/dygy/guitarset/internal/errors"
	"github.com/dygy/guitarset/internal/exec"
)

func newTestAugmenter(chain effects.Chain, ex Exercise, seed int64) *Augmenter {
	tf := effects.NewTransformer(exec.NewRunner(""))
	return New(tf, nil, chain, ex, NewSampler(seed))
}

func TestTrackRejectsInvertedBounds(t *testing.T) {
	chain := effects.Chain{
		{Name: "overdrive", Spec: effects.Spec{
			"gain_db": {State: "random", Lower: 5, Upper: 3.0},
		}},
	}
	a := newTestAugmenter(chain, Regression, 1)

	_, _, err := a.Track(context.Background(), "track.wav", "fender", 0)
	require.Error(t, err)

	var be *apperrors.BoundsError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "overdrive", be.Effect)
	assert.Equal(t, "gain_db", be.Param)
}

func TestTrackRejectsListValuedRandomization(t *testing.T) {
	chain := effects.Chain{
		{Name: "chorus", Spec: effects.Spec{
			"delays": {State: "random", Lower: 20, Upper: 80.0},
		}},
	}
	a := newTestAugmenter(chain, Regression, 1)

	_, _, err := a.Track(context.Background(), "track.wav", "fender", 0)
	require.Error(t, err)

	var ue *apperrors.UnsupportedRandomError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "chorus", ue.Effect)
	assert.Equal(t, "delays", ue.Param)
}

func TestRealizeChainConstantUsesDefaultOrUpper(t *testing.T) {
	chain := effects.Chain{
		{Name: "overdrive", Spec: effects.Spec{
			"gain_db": {State: "constant", Default: true},
			"colour":  {State: "constant", Default: false, Upper: 7.0},
		}},
	}
	a := newTestAugmenter(chain, Regression, 1)

	nested, err := a.realizeChain()
	require.NoError(t, err)

	used := nested["overdrive"].(map[string]any)
	assert.Equal(t, 20.0, used["gain_db"], "capability default")
	assert.Equal(t, 7.0, used["colour"], "configured upper")
}

func TestRealizeChainConstantPassesListUpperThrough(t *testing.T) {
	chain := effects.Chain{
		{Name: "chorus", Spec: effects.Spec{
			"delays": {State: "constant", Default: false, Upper: []any{30.0, 50.0}},
		}},
	}
	a := newTestAugmenter(chain, Regression, 1)

	nested, err := a.realizeChain()
	require.NoError(t, err)

	used := nested["chorus"].(map[string]any)
	assert.Equal(t, []any{30.0, 50.0}, used["delays"])
}

func TestRealizeChainRandomWithinBounds(t *testing.T) {
	chain := effects.Chain{
		{Name: "overdrive", Spec: effects.Spec{
			"gain_db": {State: "random", Lower: 5, Upper: 30.0},
		}},
	}
	a := newTestAugmenter(chain, Regression, 7)

	for i := 0; i < 50; i++ {
		nested, err := a.realizeChain()
		require.NoError(t, err)
		v := nested["overdrive"].(map[string]any)["gain_db"].(float64)
		assert.GreaterOrEqual(t, v, 5.0)
		assert.LessOrEqual(t, v, 30.0)
	}
}

func TestClassificationSustainedEffectsAlwaysIncluded(t *testing.T) {
	chain := effects.Chain{
		{Name: "overdrive", Spec: effects.Spec{"gain_db": {State: "constant", Default: true}}},
		{Name: "tremolo", Spec: effects.Spec{"depth": {State: "constant", Default: true}}},
		{Name: "reverb", Spec: effects.Spec{"reverberance": {State: "constant", Default: true}}},
	}

	a := newTestAugmenter(chain, Classification, 11)
	sawTremoloSkipped := false
	for i := 0; i < 50; i++ {
		nested, err := a.realizeChain()
		require.NoError(t, err)
		assert.Contains(t, nested, "overdrive")
		assert.Contains(t, nested, "reverb")
		if _, ok := nested["tremolo"]; !ok {
			sawTremoloSkipped = true
		}
	}
	assert.True(t, sawTremoloSkipped, "non-sustained effect should be skipped sometimes")
}

func TestClassificationDeterministicForSeed(t *testing.T) {
	chain := effects.Chain{
		{Name: "overdrive", Spec: effects.Spec{"gain_db": {State: "random", Lower: 5, Upper: 30.0}}},
		{Name: "phaser", Spec: effects.Spec{"decay": {State: "random", Lower: 0.1, Upper: 0.5}}},
		{Name: "tremolo", Spec: effects.Spec{"depth": {State: "constant", Default: true}}},
		{Name: "reverb", Spec: effects.Spec{"reverberance": {State: "constant", Default: true}}},
	}

	a := newTestAugmenter(chain, Classification, 99)
	b := newTestAugmenter(chain, Classification, 99)

	for i := 0; i < 20; i++ {
		na, errA := a.realizeChain()
		nb, errB := b.realizeChain()
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, na, nb, "identical seeds must yield identical inclusion and parameters")
	}
}
