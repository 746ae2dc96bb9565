package effects

import (
	"context"
	"fmt"
	"strconv"

	apperrors "github.com/dygy/guitarset/internal/errors"
	"github.com/dygy/guitarset/internal/exec"
)

type appliedEffect struct {
	name   string
	params map[string]any
}

// Transformer accumulates an effect chain and renders it through sox.
// One instance is reused across tracks within a run; Reset must be called
// after every track so no effect state leaks into the next one.
type Transformer struct {
	runner  *exec.Runner
	applied []appliedEffect
}

// NewTransformer creates a transformer backed by the given sox runner.
func NewTransformer(runner *exec.Runner) *Transformer {
	return &Transformer{runner: runner}
}

// Apply appends an effect with realized parameter values to the chain.
// Parameters not present in params fall back to capability defaults at
// render time.
func (t *Transformer) Apply(name string, params map[string]any) error {
	if _, ok := Lookup(name); !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownEffect, name)
	}
	t.applied = append(t.applied, appliedEffect{name: name, params: params})
	return nil
}

// Reset clears the accumulated chain so the instance can be reused for the
// next track. Skipping this leaks effects across tracks.
func (t *Transformer) Reset() {
	t.applied = t.applied[:0]
}

// Args renders the accumulated chain as sox effect arguments.
func (t *Transformer) Args() []string {
	var args []string
	for _, e := range t.applied {
		c, _ := Lookup(e.name)
		args = append(args, e.name)
		for _, p := range c.Params {
			v, ok := e.params[p.Name]
			if !ok {
				v = p.Default
			}
			args = append(args, formatValue(v)...)
		}
	}
	return args
}

// Build renders src through the accumulated chain into dst. Extra sox
// effects (e.g. a trailing rate conversion) are appended after the chain.
func (t *Transformer) Build(ctx context.Context, src, dst string, extra ...string) error {
	args := append([]string{src, dst}, t.Args()...)
	args = append(args, extra...)
	if _, err := t.runner.Sox(ctx, args...); err != nil {
		return fmt.Errorf("build %s: %w", dst, err)
	}
	return nil
}

// formatValue renders a realized parameter value as sox argument tokens.
// Lists expand to one token per element.
func formatValue(v any) []string {
	switch x := v.(type) {
	case []float64:
		out := make([]string, len(x))
		for i, f := range x {
			out[i] = formatFloat(f)
		}
		return out
	case []any:
		var out []string
		for _, e := range x {
			out = append(out, formatValue(e)...)
		}
		return out
	case float64:
		return []string{formatFloat(x)}
	case int:
		return []string{strconv.Itoa(x)}
	default:
		return []string{fmt.Sprint(x)}
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
