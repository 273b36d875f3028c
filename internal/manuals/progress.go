package manuals

import (
	"fmt"
	"math"
	"time"
)

// ProgressKey is the store key of a section's progress for one truck on the
// calendar day of day.
func ProgressKey(truckID string, section Section, day time.Time) string {
	return fmt.Sprintf("frontoffice:%s:%s:%s", truckID, section, day.Format("2006-01-02"))
}

// SectionProgress is the checked state of one section for a day.
type SectionProgress struct {
	Section Section         `json:"section"`
	Done    map[string]bool `json:"done"`
	Checked int             `json:"checked"`
	Total   int             `json:"total"`
	Percent int             `json:"percent"`
}

// Percent is round(done / max(1, total) * 100).
func Percent(done, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// Summarize counts the checked items of ids in done.
func Summarize(section Section, ids []string, done map[string]bool) SectionProgress {
	if done == nil {
		done = map[string]bool{}
	}
	checked := 0
	for _, id := range ids {
		if done[id] {
			checked++
		}
	}
	return SectionProgress{
		Section: section,
		Done:    done,
		Checked: checked,
		Total:   len(ids),
		Percent: Percent(checked, len(ids)),
	}
}
