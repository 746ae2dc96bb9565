// Package augment applies the configured effect chain to single tracks and
// produces (labels, feature vector) pairs for dataset assembly.
package augment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dygy/guitarset/internal/effects"
	apperrors "github.com/dygy/guitarset/internal/errors"
	"github.com/dygy/guitarset/internal/features"
	"github.com/dygy/guitarset/internal/workspace"
)

// Exercise selects the randomization policy.
type Exercise string

const (
	// Regression keeps every active effect and randomizes parameters per
	// their configured policies.
	Regression Exercise = "regression"
	// Classification includes each non-sustained effect by a fair coin
	// flip per track repetition; parameters stay at their policy values.
	Classification Exercise = "classification"
)

// ReloadRate is the sample rate the transient render is reloaded at before
// feature extraction.
const ReloadRate = 41000

// DefaultSustain is the set of effects exempt from probabilistic exclusion
// under the classification exercise.
func DefaultSustain() map[string]bool {
	return map[string]bool{"overdrive": true, "reverb": true}
}

// Augmenter applies an ordered effect chain to tracks. The embedded
// transformer instance is reused across tracks and reset after each one.
type Augmenter struct {
	Chain    effects.Chain
	Exercise Exercise
	Sustain  map[string]bool
	Sampler  *Sampler

	// WriteDir, when non-empty, additionally persists each augmented
	// render under <WriteDir>/<model>/<n>_<basename>.
	WriteDir string

	tf *effects.Transformer
	ws *workspace.Workspace
}

// New creates an augmenter over a transformer and a workspace for
// transient renders.
func New(tf *effects.Transformer, ws *workspace.Workspace, chain effects.Chain, exercise Exercise, sampler *Sampler) *Augmenter {
	return &Augmenter{
		Chain:    chain,
		Exercise: exercise,
		Sustain:  DefaultSustain(),
		Sampler:  sampler,
		tf:       tf,
		ws:       ws,
	}
}

// Track augments one source file for repetition index n and returns the
// flattened labels and the extracted feature vector.
func (a *Augmenter) Track(ctx context.Context, path, model string, n int) (Labels, []float64, error) {
	nested, err := a.realizeChain()
	if err != nil {
		a.tf.Reset()
		return nil, nil, err
	}

	if a.WriteDir != "" {
		outDir := filepath.Join(a.WriteDir, model)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			a.tf.Reset()
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
		outFile := filepath.Join(outDir, fmt.Sprintf("%d_%s", n, filepath.Base(path)))
		if err := a.tf.Build(ctx, path, outFile); err != nil {
			a.tf.Reset()
			return nil, nil, err
		}
	}

	// sox has no in-memory output: render to a transient file, reload it
	// as a waveform, then clear the chain for the next track.
	render := a.ws.RenderWAV()
	buildErr := a.tf.Build(ctx, path, render, "rate", fmt.Sprint(ReloadRate))
	a.tf.Reset()
	if buildErr != nil {
		return nil, nil, buildErr
	}

	samples, sr, err := features.ReadWAV(render)
	if err != nil {
		return nil, nil, fmt.Errorf("reload render: %w", err)
	}

	labels := Flatten(nested, ".")
	labels["group"] = n

	vec := features.Reduce(features.MFCC(samples, sr))
	return labels, vec, nil
}

// realizeChain walks the chain in order, decides inclusion, realizes each
// parameter per its policy and applies the effects to the transformer.
// Returns the nested effect -> parameter -> value labels.
func (a *Augmenter) realizeChain() (map[string]any, error) {
	nested := map[string]any{}

	for _, e := range a.Chain {
		if a.Exercise == Classification && !a.Sustain[e.Name] {
			if !a.Sampler.Coin() {
				continue // effect skipped, nothing recorded
			}
		}

		defaults, ok := effects.Defaults(e.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownEffect, e.Name)
		}

		used := map[string]any{}
		for _, param := range sortedParams(e.Spec) {
			pol := e.Spec[param]
			switch pol.State {
			case "constant":
				if pol.Default {
					used[param] = defaults[param]
				} else {
					used[param] = pol.Upper // may be a list, passed through
				}
			case "random":
				if isList(defaults[param]) {
					return nil, &apperrors.UnsupportedRandomError{Effect: e.Name, Param: param}
				}
				upper, ok := toFloat(pol.Upper)
				if !ok {
					return nil, &apperrors.UnsupportedRandomError{Effect: e.Name, Param: param}
				}
				if upper <= pol.Lower {
					return nil, &apperrors.BoundsError{Effect: e.Name, Param: param, Lower: pol.Lower, Upper: upper}
				}
				used[param] = a.Sampler.Range(pol.Lower, upper)
			}
		}

		if err := a.tf.Apply(e.Name, used); err != nil {
			return nil, err
		}
		nested[e.Name] = used
	}

	return nested, nil
}

// sortedParams fixes parameter iteration order so a seeded run realizes
// identical values across executions.
func sortedParams(s effects.Spec) []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isList(v any) bool {
	switch v.(type) {
	case []float64, []any:
		return true
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
