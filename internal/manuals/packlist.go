package manuals

import (
	"io"
	"sort"
	"strconv"
	"strings"
)

// DefaultPackCategory groups pack items without a category.
const DefaultPackCategory = "Overig"

// PackGroup is the pack items of one category.
type PackGroup struct {
	Category string     `json:"category"`
	Items    []PackItem `json:"items"`
}

// GroupPacklist groups items by category, categories sorted, items in list
// order.
func GroupPacklist(items []PackItem) []PackGroup {
	index := map[string]int{}
	var groups []PackGroup
	for _, it := range items {
		cat := strings.TrimSpace(it.Category)
		if cat == "" {
			cat = DefaultPackCategory
		}
		idx, ok := index[cat]
		if !ok {
			idx = len(groups)
			index[cat] = idx
			groups = append(groups, PackGroup{Category: cat})
		}
		groups[idx].Items = append(groups[idx].Items, it)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})
	return groups
}

var packlistHeader = []string{"naam", "aantal", "eenheid", "opmerking", "verplicht", "categorie"}

// PacklistFilename is the download name of a truck's packing list.
func PacklistFilename(truckID string) string {
	return truckID + "-paklijst.csv"
}

// WritePacklistCSV writes the packing list with every cell quoted.
func WritePacklistCSV(w io.Writer, items []PackItem) error {
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, packlistHeader)
	for _, it := range items {
		quantity := ""
		if it.Quantity != nil {
			quantity = strconv.FormatFloat(*it.Quantity, 'f', -1, 64)
		}
		required := "nee"
		if it.Required {
			required = "ja"
		}
		rows = append(rows, []string{it.Name, quantity, it.Unit, it.Note, required, it.Category})
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, `"`+strings.ReplaceAll(cell, `"`, `""`)+`"`)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}
