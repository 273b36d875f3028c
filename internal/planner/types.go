package planner

// BasisKey is the reserved category that is always included and never weighted.
const BasisKey = "basis"

// Product is a single orderable ingredient with its rate per 100 people.
type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	BasePer100 float64 `json:"basePer100"`
}

// OptionCategory is a togglable, weighted list of products within a concept.
type OptionCategory struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Products []Product `json:"products"`
}

// Concept is a truck/menu template. Options keep insertion order; that order
// is the tie-break order used by weight normalisation and redistribution.
type Concept struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Color    string           `json:"color"`
	HowToURL string           `json:"howToUrl,omitempty"`
	Basis    []Product        `json:"basis"`
	Options  []OptionCategory `json:"options"`
}

// OptionKeys returns the option category keys in iteration order.
func (c Concept) OptionKeys() []string {
	keys := make([]string, 0, len(c.Options))
	for _, opt := range c.Options {
		keys = append(keys, opt.Key)
	}
	return keys
}

// Option looks up an option category by key.
func (c *Concept) Option(key string) *OptionCategory {
	for i := range c.Options {
		if c.Options[i].Key == key {
			return &c.Options[i]
		}
	}
	return nil
}

// HasOption reports whether key names one of the concept's option categories.
func (c Concept) HasOption(key string) bool {
	for _, opt := range c.Options {
		if opt.Key == key {
			return true
		}
	}
	return false
}

// EmptyConcept is returned wherever an instance refers to a concept that no
// longer exists.
var EmptyConcept = Concept{ID: "__empty__", Name: "(geen concept)", Color: "#e2e8f0"}

// Instance is the per-event runtime state of an active concept. A nil People
// means the count is unset while being edited and resolves as 0.
type Instance struct {
	ConceptID      string             `json:"conceptId"`
	People         *int               `json:"people"`
	EnabledOptions map[string]bool    `json:"enabledOptions"`
	OptionWeights  map[string]float64 `json:"optionWeights"`
}

// NewInstance returns the state of a freshly activated concept.
func NewInstance(conceptID string) *Instance {
	zero := 0
	return &Instance{
		ConceptID:      conceptID,
		People:         &zero,
		EnabledOptions: map[string]bool{},
		OptionWeights:  map[string]float64{},
	}
}

// PeopleCount returns the people count, treating unset as 0.
func (i *Instance) PeopleCount() int {
	if i == nil || i.People == nil {
		return 0
	}
	return *i.People
}

func (i *Instance) setPeople(n int) {
	n = max(0, min(n, MaxPeople))
	i.People = &n
}

// EnabledKeys returns the enabled option keys of concept in the concept's
// iteration order.
func (i *Instance) EnabledKeys(concept Concept) []string {
	var keys []string
	if i == nil {
		return keys
	}
	for _, key := range concept.OptionKeys() {
		if i.EnabledOptions[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// ResolvedItem is a product scaled for an instance.
type ResolvedItem struct {
	ProductID           string  `json:"productId"`
	Name                string  `json:"name"`
	Unit                string  `json:"unit"`
	Category            string  `json:"category"`
	BasePer100          float64 `json:"basePer100"`
	EffectiveBasePer100 float64 `json:"effectiveBasePer100"`
	Raw                 float64 `json:"raw"`
	Shown               int     `json:"shown"`
}

// ConceptResult holds the resolved items of a single active concept.
type ConceptResult struct {
	ConceptID   string         `json:"conceptId"`
	ConceptName string         `json:"conceptName"`
	Color       string         `json:"color"`
	People      int            `json:"people"`
	Weights     []Weight       `json:"weights"`
	Items       []ResolvedItem `json:"items"`
}

// Source records one contribution to an aggregate row.
type Source struct {
	Concept  string  `json:"concept"`
	Category string  `json:"category"`
	Raw      float64 `json:"raw"`
}

// AggregateRow is one line of the combined order list.
type AggregateRow struct {
	Name    string   `json:"name"`
	Unit    string   `json:"unit"`
	Raw     float64  `json:"raw"`
	Shown   int      `json:"shown"`
	Sources []Source `json:"sources"`
}
