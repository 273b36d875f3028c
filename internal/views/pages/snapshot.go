package pages

import (
	"encoding/json"

	"stadslab/internal/backoffice"
	"stadslab/internal/planner"
	"stadslab/internal/views/theme"
)

// BackofficeSnapshot is everything the backoffice page renders.
type BackofficeSnapshot struct {
	State   backoffice.State
	Admin   bool
	Message string
}

// NewBackofficeSnapshot wraps a planner state for rendering.
func NewBackofficeSnapshot(state backoffice.State, admin bool) BackofficeSnapshot {
	return BackofficeSnapshot{State: state, Admin: admin}
}

// Concept returns the catalog concept with id, or the placeholder concept.
func (s BackofficeSnapshot) Concept(id string) planner.Concept {
	for _, c := range s.State.Concepts {
		if c.ID == id {
			return c
		}
	}
	return planner.EmptyConcept
}

// Instance returns the instance of an active concept, or nil.
func (s BackofficeSnapshot) Instance(id string) *planner.Instance {
	return s.State.Instances[id]
}

// IsActive reports whether a concept takes part in the event.
func (s BackofficeSnapshot) IsActive(id string) bool {
	return s.State.Instances[id] != nil
}

// SplitPercent returns the share of the people of an active concept.
func (s BackofficeSnapshot) SplitPercent(id string) int {
	for _, share := range s.State.Shares {
		if share.ConceptID == id {
			return share.Percent
		}
	}
	return 0
}

// NextColor suggests a colour for a new concept.
func (s BackofficeSnapshot) NextColor() string {
	return theme.ColorAt(len(s.State.Concepts))
}

// SeedsJSON embeds the state for client-side scripts.
func (s BackofficeSnapshot) SeedsJSON() string {
	payload, err := json.Marshal(s.State)
	if err != nil {
		return "{}"
	}
	return string(payload)
}
