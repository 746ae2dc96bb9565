// Package effects wraps the sox command line behind a chain transformer.
// The set of supported effects and their parameter defaults is declared
// statically here instead of being discovered at runtime, so the validator
// and the augmenter work against an inspectable table.
package effects

// Param is one positional parameter of a sox effect. Defaults mirror the
// sox manual; list-valued defaults render space-joined on the command line.
type Param struct {
	Name    string
	Default any
}

// Capability describes one supported effect: its sox name and its
// parameters in command-line order.
type Capability struct {
	Name   string
	Params []Param
}

// The table is ordered for stable listing output; lookups go through the
// derived index below.
var table = []Capability{
	{
		Name: "overdrive",
		Params: []Param{
			{Name: "gain_db", Default: 20.0},
			{Name: "colour", Default: 20.0},
		},
	},
	{
		Name: "reverb",
		Params: []Param{
			{Name: "reverberance", Default: 50.0},
			{Name: "high_freq_damping", Default: 50.0},
			{Name: "room_scale", Default: 100.0},
			{Name: "stereo_depth", Default: 100.0},
			{Name: "pre_delay", Default: 0.0},
			{Name: "wet_gain", Default: 0.0},
		},
	},
	{
		Name: "chorus",
		Params: []Param{
			{Name: "gain_in", Default: 0.5},
			{Name: "gain_out", Default: 0.9},
			{Name: "delays", Default: []float64{40, 60}},
			{Name: "decays", Default: []float64{0.4, 0.32}},
			{Name: "speeds", Default: []float64{0.25, 0.4}},
			{Name: "depths", Default: []float64{2, 2.3}},
		},
	},
	{
		Name: "phaser",
		Params: []Param{
			{Name: "gain_in", Default: 0.8},
			{Name: "gain_out", Default: 0.74},
			{Name: "delay", Default: 3.0},
			{Name: "decay", Default: 0.4},
			{Name: "speed", Default: 0.5},
		},
	},
	{
		Name: "tremolo",
		Params: []Param{
			{Name: "speed", Default: 6.0},
			{Name: "depth", Default: 40.0},
		},
	},
	{
		Name: "pitch",
		Params: []Param{
			{Name: "n_semitones", Default: 0.0},
		},
	},
	{
		Name: "bass",
		Params: []Param{
			{Name: "gain_db", Default: 0.0},
			{Name: "frequency", Default: 100.0},
		},
	},
	{
		Name: "treble",
		Params: []Param{
			{Name: "gain_db", Default: 0.0},
			{Name: "frequency", Default: 3000.0},
		},
	},
}

var index = func() map[string]Capability {
	m := make(map[string]Capability, len(table))
	for _, c := range table {
		m[c.Name] = c
	}
	return m
}()

// Capabilities returns the full table in declaration order.
func Capabilities() []Capability {
	out := make([]Capability, len(table))
	copy(out, table)
	return out
}

// Lookup returns the capability for an effect name.
func Lookup(name string) (Capability, bool) {
	c, ok := index[name]
	return c, ok
}

// Defaults returns the parameter defaults for an effect name.
func Defaults(name string) (map[string]any, bool) {
	c, ok := index[name]
	if !ok {
		return nil, false
	}
	d := make(map[string]any, len(c.Params))
	for _, p := range c.Params {
		d[p.Name] = p.Default
	}
	return d, true
}
