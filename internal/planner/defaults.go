package planner

type seedProduct struct {
	name string
	unit string
	base float64
}

type seedOption struct {
	key      string
	products []seedProduct
}

type seedConcept struct {
	id      string
	name    string
	color   string
	basis   []seedProduct
	options []seedOption
}

var defaultConcepts = []seedConcept{
	{
		id:    "concept-gemaal",
		name:  "Gemaal",
		color: "#7dd3fc",
		basis: []seedProduct{
			{"Friet", "doos", 3},
			{"Mayonaise", "emmer", 0.6},
			{"Ketchup", "emmer", 0.3},
			{"Curry", "emmer", 0.2},
			{"A13 bakjes", "stuks", 100},
			{"Servetten", "pakken", 0.2},
			{"Friet vorkjes", "stuks", 100},
		},
		options: []seedOption{
			{"parmeTruff", []seedProduct{
				{"Parmezaan", "kg", 1},
				{"Truffel mayonaise", "emmer", 1},
				{"Gehakte peterselie", "zak", 1},
			}},
			{"loadedKip", []seedProduct{
				{"Hete kip (gaar)", "kg", 3},
				{"Sriracha mayo", "emmer", 1},
				{"Peterselie", "zak", 1},
			}},
			{"rendangStoof", []seedProduct{
				{"Rendang", "kg", 4},
				{"Uitjes", "kg", 1},
			}},
		},
	},
	{
		id:    "concept-pinsa",
		name:  "Pinsa",
		color: "#86efac",
		basis: []seedProduct{
			{"Pinsa Bodem", "doos", 3},
			{"Pizza saus mutti", "blik", 8},
			{"Pizza kaas", "kg", 7},
			{"Rucola", "zak", 2},
		},
		options: []seedOption{
			{"caprese", []seedProduct{
				{"Mozzarella", "kg", 2},
				{"Pesto", "kg", 1},
				{"Basilicum", "bos", 1},
				{"Tomaten plak", "kg", 2},
			}},
			{"bbqKip", []seedProduct{
				{"Hete kip", "kg", 3},
				{"Paprika salade", "bak", 1},
				{"Mais", "blik", 2},
				{"Barbeque saus", "fles", 1},
			}},
			{"tuna", []seedProduct{
				{"Tonijn salade", "bak", 2},
				{"Rode ui fijn", "kg", 1},
				{"Kappertjes", "pot", 1},
			}},
			{"cheeseOnion", []seedProduct{
				{"Uien", "kg", 2},
				{"Roomkaas", "kg", 1},
			}},
			{"carbonara", []seedProduct{
				{"Bacon blokjes", "kg", 2},
				{"Knoflook olie", "liter", 1},
				{"Uien", "kg", 1},
				{"Roomkaas", "kg", 1},
			}},
		},
	},
	{id: "concept-bbq-stadslab", name: "Barbeque Stadslab", color: "#fde68a"},
	{
		id:    "concept-storm",
		name:  "Storm",
		color: "#fca5a5",
		basis: []seedProduct{{"Couscous pot", "stuks", 100}},
	},
	{id: "concept-broodjes", name: "Broodjes lunch", color: "#c4b5fd"},
	{id: "concept-burger", name: "Burger concept", color: "#99f6e4"},
}

// DefaultCatalog returns the concepts a fresh installation starts with.
// Concept ids are stable; product ids are generated per call.
func DefaultCatalog() *Catalog {
	catalog := &Catalog{Concepts: make([]Concept, 0, len(defaultConcepts))}
	for _, seed := range defaultConcepts {
		concept := Concept{
			ID:      seed.id,
			Name:    seed.name,
			Color:   seed.color,
			Basis:   seedProducts(seed.basis),
			Options: make([]OptionCategory, 0, len(seed.options)),
		}
		for _, opt := range seed.options {
			concept.Options = append(concept.Options, OptionCategory{
				Key:      opt.key,
				Label:    LabelForKey(opt.key),
				Products: seedProducts(opt.products),
			})
		}
		catalog.Concepts = append(catalog.Concepts, concept)
	}
	return catalog
}

func seedProducts(in []seedProduct) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		out = append(out, Product{ID: NewID(), Name: p.name, Unit: p.unit, BasePer100: p.base})
	}
	return out
}
