package augment

// Labels is the flattened label mapping for one augmented sample: dotted
// effect.parameter keys plus the "group" repetition index.
type Labels map[string]any

// Flatten collapses nested effect/parameter labels into a single level by
// joining key paths with sep. Idempotent on already-flat input.
func Flatten(x map[string]any, sep string) Labels {
	out := Labels{}
	flattenInto(out, x, "", sep)
	return out
}

func flattenInto(out Labels, x map[string]any, parent, sep string) {
	for k, v := range x {
		key := k
		if parent != "" {
			key = parent + sep + k
		}
		switch nested := v.(type) {
		case map[string]any:
			flattenInto(out, nested, key, sep)
		default:
			out[key] = v
		}
	}
}
