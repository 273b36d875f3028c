package planner

import (
	"math"
	"strings"
)

// DefaultEventName is used until the planner names the event.
const DefaultEventName = "Nieuw evenement"

// Event is the state of the event being planned. Order lists the active
// concept ids in activation order, which is the iteration order for people
// splitting and for the per-concept results.
type Event struct {
	Name      string               `json:"name"`
	Order     []string             `json:"order"`
	Instances map[string]*Instance `json:"instances"`
}

// NewEvent returns an event without active concepts.
func NewEvent(name string) *Event {
	e := &Event{Instances: map[string]*Instance{}}
	e.SetName(name)
	return e
}

// SetName renames the event, falling back to the default name when blank.
func (e *Event) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEventName
	}
	e.Name = name
}

// IsActive reports whether conceptID currently has an instance.
func (e *Event) IsActive(conceptID string) bool {
	_, ok := e.Instances[conceptID]
	return ok
}

// Instance returns the instance of an active concept, or nil.
func (e *Event) Instance(conceptID string) *Instance {
	return e.Instances[conceptID]
}

// Reconcile drops instances whose concept is gone, repairs the activation
// order and makes every option key of each concept present in the instance
// maps with disabled/0 defaults.
func (e *Event) Reconcile(catalog *Catalog) {
	if e.Instances == nil {
		e.Instances = map[string]*Instance{}
	}

	seen := make(map[string]bool, len(e.Order))
	order := make([]string, 0, len(e.Instances))
	for _, id := range e.Order {
		if seen[id] || e.Instances[id] == nil || catalog.Find(id) == nil {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}
	// Instances without an order entry follow catalog order.
	for _, c := range catalog.Concepts {
		if !seen[c.ID] && e.Instances[c.ID] != nil {
			seen[c.ID] = true
			order = append(order, c.ID)
		}
	}
	for id := range e.Instances {
		if !seen[id] {
			delete(e.Instances, id)
		}
	}
	e.Order = order

	for _, id := range e.Order {
		inst := e.Instances[id]
		concept := catalog.Find(id)
		inst.ConceptID = id
		if inst.EnabledOptions == nil {
			inst.EnabledOptions = map[string]bool{}
		}
		if inst.OptionWeights == nil {
			inst.OptionWeights = map[string]float64{}
		}
		if inst.People != nil {
			inst.setPeople(*inst.People)
		}
		for _, key := range concept.OptionKeys() {
			if _, ok := inst.EnabledOptions[key]; !ok {
				inst.EnabledOptions[key] = false
			}
			if _, ok := inst.OptionWeights[key]; !ok {
				inst.OptionWeights[key] = 0
			}
		}
		for key := range inst.EnabledOptions {
			if !concept.HasOption(key) {
				delete(inst.EnabledOptions, key)
			}
		}
		for key := range inst.OptionWeights {
			if !concept.HasOption(key) {
				delete(inst.OptionWeights, key)
			}
		}
	}
}

// ToggleConcept activates an inactive concept with a fresh instance, or
// deletes the instance of an active one. Unknown concepts are ignored.
func (e *Event) ToggleConcept(catalog *Catalog, conceptID string) bool {
	if e.IsActive(conceptID) {
		e.Forget(conceptID)
		return true
	}
	concept := catalog.Find(conceptID)
	if concept == nil {
		return false
	}
	inst := NewInstance(conceptID)
	for _, key := range concept.OptionKeys() {
		inst.EnabledOptions[key] = false
		inst.OptionWeights[key] = 0
	}
	e.Instances[conceptID] = inst
	e.Order = append(e.Order, conceptID)
	return true
}

// Forget deletes the instance of conceptID.
func (e *Event) Forget(conceptID string) {
	delete(e.Instances, conceptID)
	for i, id := range e.Order {
		if id == conceptID {
			e.Order = append(e.Order[:i:i], e.Order[i+1:]...)
			break
		}
	}
}

// SetPeople stores a people count, clamped to 0..MaxPeople. A nil value marks
// the count as unset.
func (e *Event) SetPeople(conceptID string, value *int) bool {
	inst := e.Instances[conceptID]
	if inst == nil {
		return false
	}
	if value == nil {
		inst.People = nil
		return true
	}
	inst.setPeople(*value)
	return true
}

// SetOptionEnabled toggles an option category. A change to the enabled set
// resets the weights to an equal split over the enabled keys; disabled keys
// hold 0.
func (e *Event) SetOptionEnabled(catalog *Catalog, conceptID, key string, on bool) bool {
	inst, concept := e.lookup(catalog, conceptID)
	if inst == nil || !concept.HasOption(key) {
		return false
	}
	if inst.EnabledOptions[key] == on {
		inst.OptionWeights = Rebalance(concept.OptionKeys(), inst.EnabledOptions, inst.OptionWeights)
		return true
	}
	inst.EnabledOptions[key] = on
	inst.OptionWeights = Equalize(concept.OptionKeys(), inst.EnabledOptions, inst.OptionWeights)
	return true
}

// SetOptionWeight pins one option weight and redistributes the others.
func (e *Event) SetOptionWeight(catalog *Catalog, conceptID, key string, value float64) bool {
	inst, concept := e.lookup(catalog, conceptID)
	if inst == nil || !concept.HasOption(key) {
		return false
	}
	inst.OptionWeights = Redistribute(concept.OptionKeys(), inst.EnabledOptions, inst.OptionWeights, key, value)
	return true
}

// EqualizeWeights splits the option weights of a concept evenly.
func (e *Event) EqualizeWeights(catalog *Catalog, conceptID string) bool {
	inst, concept := e.lookup(catalog, conceptID)
	if inst == nil {
		return false
	}
	inst.OptionWeights = Equalize(concept.OptionKeys(), inst.EnabledOptions, inst.OptionWeights)
	return true
}

// DropOption removes an option key from the instance of conceptID.
func (e *Event) DropOption(conceptID, key string) {
	inst := e.Instances[conceptID]
	if inst == nil {
		return
	}
	delete(inst.EnabledOptions, key)
	delete(inst.OptionWeights, key)
}

// TotalPeople sums the people of every active concept.
func (e *Event) TotalPeople() int {
	total := 0
	for _, id := range e.Order {
		total += e.Instances[id].PeopleCount()
	}
	return total
}

// EqualizeSplit resets the people of the active concepts to an even split of
// the current total. The first total mod N concepts get one extra person.
func (e *Event) EqualizeSplit() {
	n := len(e.Order)
	if n == 0 {
		return
	}
	total := e.TotalPeople()
	even := total / n
	leftover := total - even*n
	for idx, id := range e.Order {
		people := even
		if idx < leftover {
			people++
		}
		e.Instances[id].setPeople(people)
	}
}

// SetSplitPercent gives conceptID round(pct% of the total) people and adds
// the rest of the total, spread evenly, on top of the other concepts' current
// counts. A zero total is treated as 1 for the percentage maths.
func (e *Event) SetSplitPercent(conceptID string, pct float64) bool {
	target := e.Instances[conceptID]
	if target == nil {
		return false
	}
	total := e.TotalPeople()
	if total < 1 {
		total = 1
	}
	targetAbs := int(math.Round(clampPercent(pct) / 100 * float64(total)))
	target.setPeople(targetAbs)

	others := make([]string, 0, len(e.Order))
	for _, id := range e.Order {
		if id != conceptID {
			others = append(others, id)
		}
	}
	if len(others) == 0 {
		return true
	}
	rest := total - targetAbs
	if rest < 0 {
		rest = 0
	}
	per := rest / len(others)
	remainder := rest - per*len(others)
	for _, id := range others {
		add := per
		if remainder > 0 {
			add++
			remainder--
		}
		inst := e.Instances[id]
		inst.setPeople(inst.PeopleCount() + add)
	}
	return true
}

// SplitShare is one concept's part of the event's people.
type SplitShare struct {
	ConceptID string `json:"conceptId"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	People    int    `json:"people"`
	Percent   int    `json:"percent"`
}

// SplitShares reports each active concept's people and rounded percentage of
// the total.
func (e *Event) SplitShares(catalog *Catalog) []SplitShare {
	total := e.TotalPeople()
	if total < 1 {
		total = 1
	}
	shares := make([]SplitShare, 0, len(e.Order))
	for _, id := range e.Order {
		concept := catalog.FindOrEmpty(id)
		people := e.Instances[id].PeopleCount()
		shares = append(shares, SplitShare{
			ConceptID: id,
			Name:      concept.Name,
			Color:     concept.Color,
			People:    people,
			Percent:   int(math.Round(float64(people) / float64(total) * 100)),
		})
	}
	return shares
}

// Results resolves the items of every active concept in activation order.
func (e *Event) Results(catalog *Catalog) []ConceptResult {
	results := make([]ConceptResult, 0, len(e.Order))
	for _, id := range e.Order {
		inst := e.Instances[id]
		concept := catalog.FindOrEmpty(id)
		results = append(results, ConceptResult{
			ConceptID:   id,
			ConceptName: concept.Name,
			Color:       concept.Color,
			People:      inst.PeopleCount(),
			Weights:     Normalize(inst.EnabledKeys(concept), inst.OptionWeights),
			Items:       ResolveItems(concept, inst),
		})
	}
	return results
}

func (e *Event) lookup(catalog *Catalog, conceptID string) (*Instance, Concept) {
	inst := e.Instances[conceptID]
	concept := catalog.Find(conceptID)
	if inst == nil || concept == nil {
		return nil, EmptyConcept
	}
	return inst, *concept
}
