package pages

import (
	"strconv"
	"strings"

	"stadslab/internal/planner"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatAmount renders a quantity with at most two decimals and a decimal
// comma.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "" || s == "-0" {
		s = "0"
	}
	return strings.Replace(s, ".", ",", 1)
}

// PeopleValue is the value of a people input; unset counts render empty.
func PeopleValue(inst *planner.Instance) string {
	if inst == nil || inst.People == nil {
		return ""
	}
	return strconv.Itoa(*inst.People)
}

// SourcesLabel joins the contributions of an aggregate row for display.
func SourcesLabel(sources []planner.Source) string {
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, s.Concept+" ("+s.Category+"): "+FormatAmount(s.Raw))
	}
	return strings.Join(parts, ", ")
}

// CategoryLabel names a resolved item's category for display.
func CategoryLabel(concept planner.Concept, key string) string {
	if key == planner.BasisKey {
		return "Basis"
	}
	if opt := concept.Option(key); opt != nil && opt.Label != "" {
		return opt.Label
	}
	return planner.LabelForKey(key)
}
