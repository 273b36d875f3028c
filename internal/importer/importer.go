// Package importer turns supplier documents into product suggestions for the
// concept catalog.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Suggestion is a product read from a document. Nothing is stored until a
// planner adds it to a concept.
type Suggestion struct {
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	BasePer100 float64 `json:"basePer100"`
}

// ExtractPDFText returns the plain text of every page.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// IsPDF reports whether an upload looks like a PDF by type or file name.
func IsPDF(fileName, mime string) bool {
	if strings.Contains(strings.ToLower(mime), "pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(fileName), ".pdf")
}

var spacedLine = regexp.MustCompile(`^(.+?)\s+(\d+(?:[.,]\d+)?)\s+(\p{L}[\p{L}.]*)$`)

// ParseSuggestions reads "<name> <number> <unit>" and "<name>;<unit>;<number>"
// lines. Other lines are skipped.
func ParseSuggestions(text string) []Suggestion {
	var out []Suggestion
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if parts := strings.Split(line, ";"); len(parts) == 3 {
			if v, ok := parseNumber(parts[2]); ok && strings.TrimSpace(parts[0]) != "" {
				out = append(out, Suggestion{Name: strings.TrimSpace(parts[0]), Unit: strings.TrimSpace(parts[1]), BasePer100: v})
			}
			continue
		}
		m := spacedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, ok := parseNumber(m[2])
		if !ok {
			continue
		}
		out = append(out, Suggestion{Name: strings.TrimSpace(m[1]), Unit: m[3], BasePer100: v})
	}
	return out
}

func parseNumber(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(v), ",", ".", 1), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

// Row is one product line of a catalog CSV.
type Row struct {
	Concept  string
	Category string
	Suggestion
}

var csvHeader = []string{"concept", "category", "name", "unit", "basePer100"}

// ErrBadHeader is returned when a catalog CSV does not start with the
// expected header.
var ErrBadHeader = errors.New("importer: unexpected csv header")

// ReadCatalogCSV reads concept,category,name,unit,basePer100 rows.
func ReadCatalogCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return nil, ErrBadHeader
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		base, ok := parseNumber(record[4])
		if !ok {
			return nil, fmt.Errorf("line %d: invalid basePer100 %q", line, record[4])
		}
		rows = append(rows, Row{
			Concept:    strings.TrimSpace(record[0]),
			Category:   strings.TrimSpace(record[1]),
			Suggestion: Suggestion{Name: strings.TrimSpace(record[2]), Unit: strings.TrimSpace(record[3]), BasePer100: base},
		})
	}
	return rows, nil
}
