package effects

import "sort"

// ParamPolicy states how one effect parameter is realized per track.
//
//	state "constant": the capability default when Default is true,
//	                  otherwise the configured Upper (which may be a list).
//	state "random":   a draw from [Lower, Upper]; Upper must be strictly
//	                  greater than Lower and must not be a list.
type ParamPolicy struct {
	State   string  `mapstructure:"state"`
	Default bool    `mapstructure:"default"`
	Lower   float64 `mapstructure:"lower"`
	Upper   any     `mapstructure:"upper"`
}

// Spec maps parameter names to their realization policies.
type Spec map[string]ParamPolicy

// NamedSpec is one entry of an ordered effect chain.
type NamedSpec struct {
	Name string
	Spec Spec
}

// Chain is the ordered effect sequence applied per augmentation pass.
type Chain []NamedSpec

// Validate cross-checks configured effect names against the capability
// table. Returns (true, nil) when every name is supported, otherwise
// (false, sorted unsupported names). Pure; the caller decides how to
// proceed on mismatch.
func Validate(specs map[string]Spec) (bool, []string) {
	var invalid []string
	for name := range specs {
		if _, ok := index[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) == 0 {
		return true, nil
	}
	sort.Strings(invalid)
	return false, invalid
}

// Order arranges active effects into the fixed execution order: overdrive
// always first, reverb always last, everything else sorted in between.
func Order(specs map[string]Spec) Chain {
	var middle []string
	for name := range specs {
		if name != "overdrive" && name != "reverb" {
			middle = append(middle, name)
		}
	}
	sort.Strings(middle)

	names := append([]string{"overdrive"}, middle...)
	names = append(names, "reverb")

	chain := make(Chain, 0, len(names))
	for _, name := range names {
		spec, ok := specs[name]
		if !ok {
			continue
		}
		chain = append(chain, NamedSpec{Name: name, Spec: spec})
	}
	return chain
}
