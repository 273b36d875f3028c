package planner

import "math"

// Quantity is a scaled requirement: the exact amount and the amount to order.
type Quantity struct {
	Raw   float64 `json:"raw"`
	Shown int     `json:"shown"`
}

// Scale converts a rate per 100 people into the quantity needed for people.
// NaN rates count as 0; callers clamp negatives before they get here.
func Scale(basePer100, people float64) Quantity {
	if math.IsNaN(basePer100) || math.IsInf(basePer100, 0) {
		basePer100 = 0
	}
	if math.IsNaN(people) || math.IsInf(people, 0) {
		people = 0
	}
	raw := (people / 100) * basePer100
	return Quantity{Raw: raw, Shown: ceilInt(raw)}
}

// ceilEpsilon absorbs binary rounding noise such as 1.0000000000000002, which
// would otherwise order a whole extra unit.
const ceilEpsilon = 1e-9

func ceilInt(v float64) int {
	c := math.Ceil(v - ceilEpsilon)
	if c <= 0 {
		return 0
	}
	return int(c)
}

// round2 mirrors rounding to two decimals for display-grade percentages.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClampNumber turns non-finite and negative input into 0.
func ClampNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// MaxPeople caps a single concept's people count so that totals stay far
// from int overflow.
const MaxPeople = 1_000_000

// PeopleFromNumber converts user input into a people count in 0..MaxPeople.
// Fractions are truncated; NaN, infinities and negatives give 0.
func PeopleFromNumber(v float64) int {
	return int(math.Min(ClampNumber(v), MaxPeople))
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
