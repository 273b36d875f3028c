package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   float64
		people float64
		raw    float64
		shown  int
	}{
		{name: "friet for 200", base: 3, people: 200, raw: 6, shown: 6},
		{name: "fraction rounds up", base: 10, people: 33, raw: 3.3, shown: 4},
		{name: "no people", base: 5, people: 0, raw: 0, shown: 0},
		{name: "nan base", base: math.NaN(), people: 100, raw: 0, shown: 0},
		{name: "zero base", base: 0, people: 120, raw: 0, shown: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := Scale(tt.base, tt.people)
			assert.InDelta(t, tt.raw, q.Raw, 1e-9)
			assert.Equal(t, tt.shown, q.Shown)
		})
	}
}

func TestScaleShownIsCeilOfRaw(t *testing.T) {
	t.Parallel()

	for _, base := range []float64{0, 0.2, 0.6, 1, 2.5, 3, 7, 100} {
		for people := 0; people <= 500; people += 7 {
			q := Scale(base, float64(people))
			want := (float64(people) / 100) * base
			assert.Equal(t, want, q.Raw)
			assert.Equal(t, int(math.Ceil(want-ceilEpsilon)), q.Shown)
		}
	}
}

func TestCeilIgnoresRoundingNoise(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, ceilInt(0.1+0.34+0.56+0.0000000000000002))
	assert.Equal(t, 1, ceilInt(1.0000000000000002))
	assert.Equal(t, 2, ceilInt(1.001))
	assert.Equal(t, 1, ceilInt(0.0000001))
	assert.Equal(t, 0, ceilInt(-0.5))
}

func TestClampNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ClampNumber(-3))
	assert.Equal(t, 0.0, ClampNumber(math.NaN()))
	assert.Equal(t, 0.0, ClampNumber(math.Inf(1)))
	assert.Equal(t, 2.5, ClampNumber(2.5))
}

func TestPeopleFromNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, PeopleFromNumber(-4))
	assert.Equal(t, 0, PeopleFromNumber(math.NaN()))
	assert.Equal(t, 12, PeopleFromNumber(12.9))
	assert.Equal(t, MaxPeople, PeopleFromNumber(1e300))
	assert.Equal(t, MaxPeople, PeopleFromNumber(MaxPeople+1))
}
