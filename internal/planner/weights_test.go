package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumWeights(keys []string, m map[string]float64) float64 {
	total := 0.0
	for _, k := range keys {
		total += m[k]
	}
	return total
}

func TestNormalizeEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Normalize(nil, map[string]float64{"a": 40}))
}

func TestNormalizeFixesDriftOnFirstKey(t *testing.T) {
	t.Parallel()

	got := WeightMap(Normalize([]string{"a", "b"}, map[string]float64{"a": 33.333, "b": 33.333}))
	assert.InDelta(t, 66.67, got["a"], 1e-9)
	assert.InDelta(t, 33.33, got["b"], 1e-9)
}

func TestNormalizeUnsetWeights(t *testing.T) {
	t.Parallel()

	got := Normalize([]string{"a", "b", "c"}, nil)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, 100.0, got[0].Percent)
	assert.Equal(t, 0.0, got[1].Percent)
	assert.Equal(t, 0.0, got[2].Percent)
}

func TestNormalizeOnlyEnabledKeys(t *testing.T) {
	t.Parallel()

	got := WeightMap(Normalize([]string{"b"}, map[string]float64{"a": 60, "b": 40}))
	assert.NotContains(t, got, "a")
	assert.Equal(t, 100.0, got["b"])
}

func TestNormalizeAlwaysSumsToHundred(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	keys := []string{"a", "b", "c", "d", "e", "f"}
	for round := 0; round < 500; round++ {
		n := 1 + rng.Intn(len(keys))
		raw := map[string]float64{}
		for _, k := range keys[:n] {
			raw[k] = rng.Float64() * 120
		}
		out := WeightMap(Normalize(keys[:n], raw))
		assert.InDelta(t, 100, sumWeights(keys[:n], out), 0.01+1e-9)
	}
}

func TestRedistribute(t *testing.T) {
	t.Parallel()

	keys := []string{"a", "b", "c"}

	tests := []struct {
		name    string
		enabled map[string]bool
		current map[string]float64
		target  string
		value   float64
		want    map[string]float64
	}{
		{
			name:    "two keys at half",
			enabled: map[string]bool{"a": true, "b": true},
			current: map[string]float64{"a": 50, "b": 50},
			target:  "a",
			value:   70,
			want:    map[string]float64{"a": 70, "b": 30, "c": 0},
		},
		{
			name:    "single key is forced to 100",
			enabled: map[string]bool{"b": true},
			current: map[string]float64{"b": 100},
			target:  "b",
			value:   25,
			want:    map[string]float64{"a": 0, "b": 100, "c": 0},
		},
		{
			name:    "others without weight share evenly",
			enabled: map[string]bool{"a": true, "b": true, "c": true},
			current: map[string]float64{"a": 100},
			target:  "a",
			value:   40,
			want:    map[string]float64{"a": 40, "b": 30, "c": 30},
		},
		{
			name:    "proportional with remainder on last",
			enabled: map[string]bool{"a": true, "b": true, "c": true},
			current: map[string]float64{"a": 50, "b": 30, "c": 20},
			target:  "a",
			value:   20,
			want:    map[string]float64{"a": 20, "b": 48, "c": 32},
		},
		{
			name:    "value is clamped",
			enabled: map[string]bool{"a": true, "b": true},
			current: map[string]float64{"a": 50, "b": 50},
			target:  "b",
			value:   140,
			want:    map[string]float64{"a": 0, "b": 100, "c": 0},
		},
		{
			name:    "disabled keys are zeroed",
			enabled: map[string]bool{"a": true, "b": true},
			current: map[string]float64{"a": 50, "b": 50, "c": 12},
			target:  "b",
			value:   10,
			want:    map[string]float64{"a": 90, "b": 10, "c": 0},
		},
		{
			name:    "disabled target keeps balanced weights",
			enabled: map[string]bool{"a": true, "b": true},
			current: map[string]float64{"a": 50, "b": 50},
			target:  "c",
			value:   80,
			want:    map[string]float64{"a": 50, "b": 50, "c": 0},
		},
		{
			name:    "disabled target rebalances drifted weights",
			enabled: map[string]bool{"a": true, "b": true},
			current: map[string]float64{"a": 30, "b": 10, "c": 60},
			target:  "c",
			value:   80,
			want:    map[string]float64{"a": 90, "b": 10, "c": 0},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Redistribute(keys, tt.enabled, tt.current, tt.target, tt.value)
			for k, v := range tt.want {
				assert.InDelta(t, v, got[k], 1e-9, "key %s", k)
			}
		})
	}
}

func TestRedistributeKeepsTotal(t *testing.T) {
	t.Parallel()

	keys := []string{"a", "b", "c"}
	enabled := map[string]bool{"a": true, "b": true, "c": true}
	current := map[string]float64{"a": 33.33, "b": 33.33, "c": 33.34}

	for _, v := range []float64{0, 10, 33.3, 50, 77.77, 99.99, 100} {
		got := Redistribute(keys, enabled, current, "a", v)
		assert.InDelta(t, 100, sumWeights(keys, got), 0.01+1e-9)
		assert.InDelta(t, v, got["a"], 1e-9)
	}
}

func TestRedistributeReapplyIsStable(t *testing.T) {
	t.Parallel()

	keys := []string{"a", "b", "c"}
	enabled := map[string]bool{"a": true, "b": true, "c": true}
	first := Redistribute(keys, enabled, map[string]float64{"a": 20, "b": 50, "c": 30}, "b", 35)
	second := Redistribute(keys, enabled, first, "b", 35)
	assert.Equal(t, first, second)
}

func TestEqualize(t *testing.T) {
	t.Parallel()

	keys := []string{"a", "b", "c", "d", "e", "f"}

	three := Equalize(keys, map[string]bool{"a": true, "b": true, "c": true}, map[string]float64{"d": 10})
	assert.InDelta(t, 33.33, three["a"], 1e-9)
	assert.InDelta(t, 33.33, three["b"], 1e-9)
	assert.InDelta(t, 33.33, three["c"], 1e-9)
	assert.Equal(t, 0.0, three["d"])

	all := map[string]bool{}
	for _, k := range keys {
		all[k] = true
	}
	six := Equalize(keys, all, nil)
	assert.InDelta(t, 16.65, six["a"], 1e-9)
	assert.InDelta(t, 16.67, six["f"], 1e-9)
	assert.InDelta(t, 100, sumWeights(keys, six), 1e-9)

	one := Equalize(keys, map[string]bool{"c": true}, map[string]float64{"c": 3})
	assert.Equal(t, 100.0, one["c"])

	none := Equalize(keys, nil, map[string]float64{"a": 12})
	assert.Equal(t, 12.0, none["a"])
}

func TestRebalance(t *testing.T) {
	t.Parallel()

	keys := []string{"a", "b"}
	got := Rebalance(keys, map[string]bool{"b": true}, map[string]float64{"a": 60, "b": 40})
	assert.Equal(t, 0.0, got["a"])
	assert.Equal(t, 100.0, got["b"])
}
