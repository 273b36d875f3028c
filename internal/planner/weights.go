package planner

import "math"

const weightTolerance = 0.01

// Weight is the normalised percentage of one enabled option category.
type Weight struct {
	Key     string  `json:"key"`
	Percent float64 `json:"percent"`
}

// Normalize rounds the stored weights of the enabled keys to two decimals and
// makes them sum to exactly 100. Any drift beyond the tolerance is added to
// the first enabled key. The result follows enabledKeys order and is empty
// when no key is enabled.
func Normalize(enabledKeys []string, raw map[string]float64) []Weight {
	if len(enabledKeys) == 0 {
		return nil
	}
	out := make([]Weight, 0, len(enabledKeys))
	sum := 0.0
	for _, key := range enabledKeys {
		v := round2(finite(raw[key]))
		out = append(out, Weight{Key: key, Percent: v})
		sum += v
	}
	if diff := round2(100 - sum); math.Abs(diff) > weightTolerance {
		out[0].Percent = round2(out[0].Percent + diff)
	}
	return out
}

// WeightMap flattens normalised weights into a lookup map.
func WeightMap(weights []Weight) map[string]float64 {
	m := make(map[string]float64, len(weights))
	for _, w := range weights {
		m[w.Key] = w.Percent
	}
	return m
}

// Redistribute sets targetKey to value (clamped to 0..100) and spreads the
// remainder over the other enabled keys in proportion to their current
// weights, or evenly when they carry no weight. The last other key absorbs
// the rounding remainder, the total-100 correction lands on the first other
// key, and disabled keys end up at 0. optionKeys fixes iteration order.
//
// With a single enabled key that key is forced to 100. When targetKey is not
// enabled the enabled keys are normalised back to 100 and the value is
// ignored. When nothing is enabled only the disabled keys are zeroed.
func Redistribute(optionKeys []string, enabled map[string]bool, current map[string]float64, targetKey string, value float64) map[string]float64 {
	next := copyWeights(current)
	on := enabledInOrder(optionKeys, enabled)

	switch {
	case len(on) == 0:
	case len(on) == 1:
		next[on[0]] = 100
	case !enabled[targetKey]:
		for _, w := range Normalize(on, current) {
			next[w.Key] = w.Percent
		}
	default:
		v := clampPercent(value)
		next[targetKey] = v

		others := make([]string, 0, len(on)-1)
		for _, key := range on {
			if key != targetKey {
				others = append(others, key)
			}
		}

		remaining := 100 - v
		totalOthers := 0.0
		for _, key := range others {
			totalOthers += finite(current[key])
		}

		if totalOthers <= 0 {
			even := round2(remaining / float64(len(others)))
			for _, key := range others {
				next[key] = even
			}
		} else {
			assigned := 0.0
			for idx, key := range others {
				if idx == len(others)-1 {
					next[key] = round2(remaining - assigned)
					continue
				}
				share := finite(current[key]) / totalOthers
				val := round2(remaining * share)
				next[key] = val
				assigned += val
			}
		}

		correctTotal(on, next, others[0])
	}

	zeroDisabled(optionKeys, enabled, next)
	return next
}

// Equalize splits 100 evenly over the enabled keys, correcting drift on the
// first enabled key.
func Equalize(optionKeys []string, enabled map[string]bool, current map[string]float64) map[string]float64 {
	next := copyWeights(current)
	on := enabledInOrder(optionKeys, enabled)

	switch len(on) {
	case 0:
		return next
	case 1:
		next[on[0]] = 100
	default:
		even := round2(100 / float64(len(on)))
		for _, key := range on {
			next[key] = even
		}
		correctTotal(on, next, on[0])
	}

	zeroDisabled(optionKeys, enabled, next)
	return next
}

// Rebalance writes the normalised weights back into the stored map so the
// enabled keys sum to 100 and disabled keys are 0.
func Rebalance(optionKeys []string, enabled map[string]bool, current map[string]float64) map[string]float64 {
	next := copyWeights(current)
	for _, w := range Normalize(enabledInOrder(optionKeys, enabled), current) {
		next[w.Key] = w.Percent
	}
	zeroDisabled(optionKeys, enabled, next)
	return next
}

func correctTotal(on []string, weights map[string]float64, fix string) {
	sum := 0.0
	for _, key := range on {
		sum += finite(weights[key])
	}
	if diff := round2(100 - sum); math.Abs(diff) > weightTolerance {
		weights[fix] = round2(finite(weights[fix]) + diff)
	}
}

func enabledInOrder(optionKeys []string, enabled map[string]bool) []string {
	var on []string
	for _, key := range optionKeys {
		if enabled[key] {
			on = append(on, key)
		}
	}
	return on
}

func zeroDisabled(optionKeys []string, enabled map[string]bool, weights map[string]float64) {
	for _, key := range optionKeys {
		if !enabled[key] {
			weights[key] = 0
		}
	}
}

func copyWeights(src map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
