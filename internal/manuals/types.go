// Package manuals holds the operational handbooks of the food trucks: menu,
// equipment, build-up and tear-down checklists, and the packing list with
// per-day progress.
package manuals

import (
	"errors"
)

// Section names a checklist whose progress is tracked per day.
type Section string

const (
	SectionBuildUp  Section = "opbouw"
	SectionTearDown Section = "afbouw"
	SectionPacklist Section = "paklijst"
)

// Sections lists the tracked sections in display order.
var Sections = []Section{SectionBuildUp, SectionTearDown, SectionPacklist}

// ParseSection validates a section name.
func ParseSection(v string) (Section, error) {
	for _, s := range Sections {
		if string(s) == v {
			return s, nil
		}
	}
	return "", ErrUnknownSection
}

var (
	ErrManualNotFound        = errors.New("manual not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrUnknownSection        = errors.New("unknown section")
	ErrUnknownCollection     = errors.New("unknown collection")
)

// Infra describes the utilities a truck needs on site.
type Infra struct {
	Power string `json:"power" validate:"max=200"`
	Water string `json:"water,omitempty" validate:"max=200"`
	Gas   string `json:"gas,omitempty" validate:"max=200"`
}

// MenuItem is a dish served from the truck.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required,max=120"`
	Price       string   `json:"price,omitempty" validate:"max=32"`
	Description string   `json:"description,omitempty" validate:"max=500"`
	Allergens   []string `json:"allergens,omitempty" validate:"dive,max=40"`
	PhotoURL    string   `json:"photoUrl,omitempty" validate:"omitempty,url"`
}

// Equipment is an appliance on board.
type Equipment struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required,max=120"`
	Specs string `json:"specs,omitempty" validate:"max=200"`
	Note  string `json:"note,omitempty" validate:"max=500"`
}

// ChecklistItem is one step of the build-up or tear-down checklist.
type ChecklistItem struct {
	ID       string `json:"id"`
	Text     string `json:"text" validate:"required,max=300"`
	Required bool   `json:"required,omitempty"`
}

// PackItem is one line of the packing list. A nil Quantity is left blank.
type PackItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" validate:"required,max=120"`
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Unit     string   `json:"unit,omitempty" validate:"max=32"`
	Note     string   `json:"note,omitempty" validate:"max=300"`
	Required bool     `json:"required,omitempty"`
	Category string   `json:"category,omitempty" validate:"max=60"`
}

// Manual is the handbook of one truck.
type Manual struct {
	ID            string          `json:"id"`
	Name          string          `json:"name" validate:"required,max=120"`
	Description   string          `json:"description,omitempty" validate:"max=1000"`
	Active        bool            `json:"active"`
	TruckPhotoURL string          `json:"truckPhotoUrl,omitempty" validate:"omitempty,url"`
	Infra         Infra           `json:"infra"`
	Menu          []MenuItem      `json:"menu" validate:"dive"`
	Equipment     []Equipment     `json:"equipment" validate:"dive"`
	Logistics     string          `json:"logistics,omitempty" validate:"max=2000"`
	BuildUp       []ChecklistItem `json:"buildUp" validate:"dive"`
	TearDown      []ChecklistItem `json:"tearDown" validate:"dive"`
	Notes         string          `json:"notes,omitempty" validate:"max=2000"`
	Packlist      []PackItem      `json:"packlist" validate:"dive"`
}

// Checklist returns the items whose progress is tracked for section, as ids.
func (m Manual) Checklist(section Section) []string {
	var ids []string
	switch section {
	case SectionBuildUp:
		for _, c := range m.BuildUp {
			ids = append(ids, c.ID)
		}
	case SectionTearDown:
		for _, c := range m.TearDown {
			ids = append(ids, c.ID)
		}
	case SectionPacklist:
		for _, p := range m.Packlist {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
