package manuals

import "fmt"

func qty(v float64) *float64 { return &v }

type demoStep struct {
	text     string
	required bool
}

func steps(truck, kind string, in ...demoStep) []ChecklistItem {
	out := make([]ChecklistItem, 0, len(in))
	for i, s := range in {
		out = append(out, ChecklistItem{ID: fmt.Sprintf("%s-%s-%d", truck, kind, i+1), Text: s.text, Required: s.required})
	}
	return out
}

func numbered[T any](truck, kind string, items []T, setID func(*T, string)) []T {
	for i := range items {
		setID(&items[i], fmt.Sprintf("%s-%s-%d", truck, kind, i+1))
	}
	return items
}

func menu(truck string, items ...MenuItem) []MenuItem {
	return numbered(truck, "menu", items, func(m *MenuItem, id string) { m.ID = id })
}

func equipment(truck string, items ...Equipment) []Equipment {
	return numbered(truck, "app", items, func(e *Equipment, id string) { e.ID = id })
}

func packlist(truck string, items ...PackItem) []PackItem {
	return numbered(truck, "pak", items, func(p *PackItem, id string) { p.ID = id })
}

// DemoLibrary returns the handbooks a fresh installation starts with.
func DemoLibrary() Library {
	return Library{Manuals: []Manual{
		{
			ID:          "gemaal",
			Name:        "Gemaal – Frituurwagen",
			Description: "Frites, loaded fries & haute frituur. 2× Pitco, afzuigkap verplicht aan, koeling in wagen.",
			Active:      true,
			Infra:       Infra{Power: "1x16A (afzuigkap/koelingen)", Water: "Wasbak met jerrycan (aan-/afvoer)", Gas: "4× propaanflessen in dissel"},
			Menu: menu("gemaal",
				MenuItem{Name: "Verse friet", Price: "€4,50", Description: "Dubbel gebakken", Allergens: []string{"gluten"}},
				MenuItem{Name: "Loaded Fries", Price: "€8,50", Description: "Cheddar, jalapeño, crispy onions", Allergens: []string{"gluten", "lactose"}},
				MenuItem{Name: "Haute frituur special", Price: "€9,50", Description: "Seizoenswissel – vraag de chef"},
			),
			Equipment: equipment("gemaal",
				Equipment{Name: "Pitco friteuse #1", Specs: "Gasgestookt", Note: "Dagelijks oliecheck"},
				Equipment{Name: "Pitco friteuse #2", Specs: "Gasgestookt", Note: "Dagelijks oliecheck"},
				Equipment{Name: "Afzuigkap", Specs: "1x16A", Note: "Moet AAN bij gebruik friteuses"},
				Equipment{Name: "Koeling", Specs: "0–4°C", Note: "Temperatuur loggen"},
			),
			Logistics: "Aanhanger – controleer gasflessen (4×) vastgezet in dissel. Parkeerplek 6m. Vetafscheider indien locatie vereist.",
			BuildUp: steps("gemaal", "opbouw",
				demoStep{"Plaats waterpas, wielkeggen", true},
				demoStep{"Gasflessen openen en lekcheck (zeepproef)", true},
				demoStep{"Afzuigkap inschakelen vóór ontsteken friteuses", true},
				demoStep{"Koelingen aan en temp. controleren", false},
				demoStep{"Mise-en-place: sauzen, toppings, bakjes", false},
			),
			TearDown: steps("gemaal", "afbouw",
				demoStep{"Friteuses uitschakelen, olie laten afkoelen", true},
				demoStep{"Afzuigkap uit na afkoelen", true},
				demoStep{"Gasflessen dicht + beveiliging vast", false},
				demoStep{"Koelingen reinigen, temp. loggen", false},
				demoStep{"Afval/vetrestanten volgens locatievoorschrift afvoeren", false},
			),
			Notes: "Brandblusser 6kg + blusdeken nabij frituur. Let op slipgevaar bij vetlekkage.",
			Packlist: packlist("gemaal",
				PackItem{Name: "Handschoenen", Quantity: qty(2), Unit: "doos", Required: true, Category: "Hygiëne"},
				PackItem{Name: "Vetabsorptie korrels", Quantity: qty(1), Unit: "zak", Category: "Schoonmaak"},
				PackItem{Name: "Schoonmaakdoeken", Quantity: qty(10), Unit: "stuks", Category: "Schoonmaak"},
			),
		},
		{
			ID:          "storm",
			Name:        "Storm – Schaftwagen",
			Description: "Wraps en bowls – snelle service voor bouw-/crewlocaties.",
			Active:      true,
			Infra:       Infra{Power: "1x16A (koeling/werkbank)", Water: "Wasbak met jerrycan", Gas: "n.v.t."},
			Menu: menu("storm",
				MenuItem{Name: "Chicken wrap", Price: "€8,50", Description: "Kip, knapperige sla, yoghurtsaus", Allergens: []string{"gluten", "lactose"}},
				MenuItem{Name: "Veggie bowl", Price: "€9,00", Description: "Quinoa, geroosterde groente, tahini", Allergens: []string{"sesam"}},
			),
			Equipment: equipment("storm",
				Equipment{Name: "Koelwerkbank", Specs: "0–4°C", Note: "Dagstart temp. loggen"},
				Equipment{Name: "Contactgrill", Specs: "1x16A", Note: "Schoonmaken na service"},
			),
			Logistics: "Rijbewijs B voldoende. Let op hoogte 2.7m bij inrijden parkeergarages.",
			BuildUp: steps("storm", "opbouw",
				demoStep{"Plaats, waterpas zetten, wielkeggen", true},
				demoStep{"Stroom aansluiten, koelingen aan", false},
				demoStep{"GN-bakken vullen, allergenenkaart klaarleggen", true},
			),
			TearDown: steps("storm", "afbouw",
				demoStep{"Koelingen reinigen/schoonmaken", false},
				demoStep{"Afval scheiden en afvoeren", false},
				demoStep{"Stroom los, kabels oprollen, wagen check", true},
			),
			Notes: "Allergenenkaart verplicht zichtbaar bij uitgifte.",
			Packlist: packlist("storm",
				PackItem{Name: "GN-bakken", Quantity: qty(6), Unit: "stuks", Category: "Disposables"},
				PackItem{Name: "Handschoenen", Quantity: qty(1), Unit: "doos", Category: "Hygiëne"},
				PackItem{Name: "Folierol", Quantity: qty(1), Unit: "rol", Category: "Disposables"},
			),
		},
		{
			ID:          "pizza_electric",
			Name:        "Pizza – Elektrisch",
			Description: "Dubbele elektrische oven; 60–80 pizza’s/uur met 2 pizzaioli.",
			Active:      true,
			Infra:       Infra{Power: "1x32A of 2x16A CEE", Water: "Watertank 40L + wasbak", Gas: "Geen"},
			Menu: menu("pizza_electric",
				MenuItem{Name: "Margherita", Price: "€10,00", Description: "San Marzano, fior di latte, basilicum", Allergens: []string{"gluten", "lactose"}},
				MenuItem{Name: "Diavola", Price: "€12,00", Description: "Spianata piccante, fior di latte", Allergens: []string{"gluten", "lactose"}},
			),
			Equipment: equipment("pizza_electric",
				Equipment{Name: "Elektrische pizzaoven (dubbel)", Specs: "430–450°C, 2x16A", Note: "Handschoenen verplicht"},
				Equipment{Name: "Koelwerkbank 3-deurs", Specs: "0–4°C", Note: "Temp. loggen"},
			),
			Logistics: "BE-rijbewijs indien >750kg. Parkeerplek 6m.",
			BuildUp: steps("pizza_electric", "opbouw",
				demoStep{"Waterpas + keggen", true},
				demoStep{"Stroom aansluiten (volgens schema)", true},
				demoStep{"Oven voorverwarmen tot 430–450°C", false},
				demoStep{"Deegballen en toppings klaarzetten", false},
			),
			TearDown: steps("pizza_electric", "afbouw",
				demoStep{"Ovens uit + laten afkoelen", true},
				demoStep{"Koelingen reinigen, temp. loggen", false},
				demoStep{"Kabels los en oprollen", false},
			),
			Notes: "HACCP map in lade 2. Brandblusser + blusdeken naast oven.",
			Packlist: packlist("pizza_electric",
				PackItem{Name: "Deegkrabbers", Quantity: qty(4), Unit: "stuks", Category: "Tools"},
				PackItem{Name: "Pizzaboxen 33cm", Quantity: qty(50), Unit: "stuks", Category: "Disposables"},
				PackItem{Name: "Meel (00)", Quantity: qty(5), Unit: "kg", Category: "Ingrediënten"},
			),
		},
		{
			ID:          "pizza_wood",
			Name:        "Pizza – Houtgestookt",
			Description: "Mobiele houtoven – authentieke smaak, vlam in zicht.",
			Active:      true,
			Infra:       Infra{Power: "1x16A (licht/koeling)", Water: "Watertank 40L + wasbak", Gas: "n.v.t."},
			Menu: menu("pizza_wood",
				MenuItem{Name: "Marinara", Price: "€9,50", Description: "San Marzano, knoflook, oregano", Allergens: []string{"gluten"}},
				MenuItem{Name: "Prosciutto", Price: "€12,50", Description: "Fior di latte, prosciutto, rucola", Allergens: []string{"gluten", "lactose"}},
			),
			Equipment: equipment("pizza_wood",
				Equipment{Name: "Houtoven", Specs: "400–500°C", Note: "Vonkenvanger plaatsen"},
				Equipment{Name: "Koelwerkbank", Specs: "0–4°C", Note: "Dagstart temp. loggen"},
			),
			Logistics: "Houtvoorraad mee (droog). As-emmer en vuurvaste mat verplicht.",
			BuildUp: steps("pizza_wood", "opbouw",
				demoStep{"Plaats oven met vonkenvanger", true},
				demoStep{"Stroom aan voor koelingen", false},
				demoStep{"Vuur opstoken tot 430–450°C", true},
				demoStep{"Mise-en-place: deeg en toppings", false},
			),
			TearDown: steps("pizza_wood", "afbouw",
				demoStep{"Vuur doven, as veilig opslaan", true},
				demoStep{"Werkbank/koelingen reinigen", false},
				demoStep{"Stroom los, terrein schoon", false},
			),
			Notes: "Brandblusser + blusdeken nabij oven; let op vonken en windrichting.",
			Packlist: packlist("pizza_wood",
				PackItem{Name: "Hout (droog)", Quantity: qty(6), Unit: "kratten", Required: true, Category: "Brandstof"},
				PackItem{Name: "As-emmer", Quantity: qty(1), Unit: "stuks", Category: "Veiligheid"},
				PackItem{Name: "Pizzaschep", Quantity: qty(2), Unit: "stuks", Category: "Tools"},
			),
		},
	}}
}
