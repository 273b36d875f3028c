package manuals

import (
	"strings"

	"stadslab/internal/planner"
)

// Defaults for records created from the admin panel.
const (
	NewTruckName     = "Nieuwe truck"
	NewMenuItemName  = "Nieuw gerecht"
	NewEquipmentName = "Nieuw apparaat"
	NewChecklistText = "Nieuwe stap"
	NewPackItemName  = "Nieuw item"
)

// Collection names a list inside a manual that admins can extend.
type Collection string

const (
	CollectionMenu      Collection = "menu"
	CollectionEquipment Collection = "equipment"
	CollectionBuildUp   Collection = "opbouw"
	CollectionTearDown  Collection = "afbouw"
	CollectionPacklist  Collection = "paklijst"
)

// Library is the ordered set of manuals.
type Library struct {
	Manuals []Manual `json:"manuals"`
}

// Find returns the manual with the given id, or nil.
func (l *Library) Find(id string) *Manual {
	for i := range l.Manuals {
		if l.Manuals[i].ID == id {
			return &l.Manuals[i]
		}
	}
	return nil
}

// DefaultID selects the first active manual, falling back to the first one.
func (l *Library) DefaultID() string {
	for _, m := range l.Manuals {
		if m.Active {
			return m.ID
		}
	}
	if len(l.Manuals) > 0 {
		return l.Manuals[0].ID
	}
	return ""
}

// Add appends an empty, active manual.
func (l *Library) Add() Manual {
	m := Manual{
		ID:        "truck-" + planner.NewID(),
		Name:      NewTruckName,
		Active:    true,
		Menu:      []MenuItem{},
		Equipment: []Equipment{},
		BuildUp:   []ChecklistItem{},
		TearDown:  []ChecklistItem{},
		Packlist:  []PackItem{},
	}
	l.Manuals = append(l.Manuals, m)
	return m
}

// Replace overwrites the manual with the same id. Items without an id get
// one.
func (l *Library) Replace(m Manual) (Manual, error) {
	existing := l.Find(m.ID)
	if existing == nil {
		return Manual{}, ErrManualNotFound
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		m.Name = NewTruckName
	}
	assignIDs(&m)
	*existing = m
	return m, nil
}

// Remove deletes a manual.
func (l *Library) Remove(id string) error {
	for i := range l.Manuals {
		if l.Manuals[i].ID == id {
			l.Manuals = append(l.Manuals[:i:i], l.Manuals[i+1:]...)
			return nil
		}
	}
	return ErrManualNotFound
}

// AddItem appends a default record to a collection of a manual and returns
// its id.
func (l *Library) AddItem(manualID string, c Collection) (string, error) {
	m := l.Find(manualID)
	if m == nil {
		return "", ErrManualNotFound
	}
	id := planner.NewID()
	switch c {
	case CollectionMenu:
		m.Menu = append(m.Menu, MenuItem{ID: id, Name: NewMenuItemName})
	case CollectionEquipment:
		m.Equipment = append(m.Equipment, Equipment{ID: id, Name: NewEquipmentName})
	case CollectionBuildUp:
		m.BuildUp = append(m.BuildUp, ChecklistItem{ID: id, Text: NewChecklistText})
	case CollectionTearDown:
		m.TearDown = append(m.TearDown, ChecklistItem{ID: id, Text: NewChecklistText})
	case CollectionPacklist:
		m.Packlist = append(m.Packlist, PackItem{ID: id, Name: NewPackItemName})
	default:
		return "", ErrUnknownCollection
	}
	return id, nil
}

// RemoveItem deletes a record from a collection of a manual.
func (l *Library) RemoveItem(manualID string, c Collection, itemID string) error {
	m := l.Find(manualID)
	if m == nil {
		return ErrManualNotFound
	}
	var removed bool
	switch c {
	case CollectionMenu:
		m.Menu, removed = without(m.Menu, itemID, func(v MenuItem) string { return v.ID })
	case CollectionEquipment:
		m.Equipment, removed = without(m.Equipment, itemID, func(v Equipment) string { return v.ID })
	case CollectionBuildUp:
		m.BuildUp, removed = without(m.BuildUp, itemID, func(v ChecklistItem) string { return v.ID })
	case CollectionTearDown:
		m.TearDown, removed = without(m.TearDown, itemID, func(v ChecklistItem) string { return v.ID })
	case CollectionPacklist:
		m.Packlist, removed = without(m.Packlist, itemID, func(v PackItem) string { return v.ID })
	default:
		return ErrUnknownCollection
	}
	if !removed {
		return ErrChecklistItemNotFound
	}
	return nil
}

func without[T any](items []T, id string, key func(T) string) ([]T, bool) {
	for i := range items {
		if key(items[i]) == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}

func assignIDs(m *Manual) {
	for i := range m.Menu {
		if m.Menu[i].ID == "" {
			m.Menu[i].ID = planner.NewID()
		}
	}
	for i := range m.Equipment {
		if m.Equipment[i].ID == "" {
			m.Equipment[i].ID = planner.NewID()
		}
	}
	for i := range m.BuildUp {
		if m.BuildUp[i].ID == "" {
			m.BuildUp[i].ID = planner.NewID()
		}
	}
	for i := range m.TearDown {
		if m.TearDown[i].ID == "" {
			m.TearDown[i].ID = planner.NewID()
		}
	}
	for i := range m.Packlist {
		if m.Packlist[i].ID == "" {
			m.Packlist[i].ID = planner.NewID()
		}
	}
}
