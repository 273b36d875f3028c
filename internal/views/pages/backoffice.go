package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"stadslab/internal/planner"
	"stadslab/internal/views/components"
)

var esc = components.Esc

// Backoffice renders the event planner.
func Backoffice(s BackofficeSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		st := s.State

		m.Rawf(`<script type="application/json" id="planner-state">%s</script>`, s.SeedsJSON())
		m.Component(ctx, components.Flash(s.Message))

		m.Raw(`<header class="space-y-2">`)
		m.Rawf(`<form data-api="/api/event/name" class="flex gap-2"><input name="name" value="%s" aria-label="Naam evenement" class="text-2xl font-semibold"><button type="submit">Opslaan</button></form>`,
			esc(st.EventName))
		m.Raw(`</header>`)

		m.Raw(`<section class="grid grid-cols-3 gap-4">`)
		m.Component(ctx, components.StatCard("Totaal personen", strconv.Itoa(st.TotalPeople), ""))
		m.Component(ctx, components.StatCard("Actieve concepten", strconv.Itoa(len(st.Order)), ""))
		m.Component(ctx, components.StatCard("Bestelregels", strconv.Itoa(len(st.Aggregate)), ""))
		m.Raw(`</section>`)

		m.Raw(`<section id="concepts" class="space-y-2"><h2 class="text-xl font-semibold">Concepten</h2><div class="flex flex-wrap gap-2">`)
		for _, c := range st.Concepts {
			state := "Uit"
			if s.IsActive(c.ID) {
				state = "Aan"
			}
			m.Rawf(`<form data-api="/api/event/concepts/%s/toggle"><button type="submit" style="border-left:6px solid %s" data-active="%t">%s: %s</button></form>`,
				esc(c.ID), esc(c.Color), s.IsActive(c.ID), esc(c.Name), state)
		}
		m.Raw(`</div></section>`)

		if len(st.Order) > 0 {
			m.Raw(`<section id="split" class="space-y-2"><h2 class="text-xl font-semibold">Verdeling</h2>`)
			m.Component(ctx, components.SplitBar(st.Shares))
			m.Raw(`<form data-api="/api/event/split/equalize"><button type="submit">Gelijk verdelen</button></form></section>`)
		}

		for _, res := range st.Results {
			renderConceptResult(ctx, m, s, res)
		}

		renderAggregate(m, st.Aggregate)

		if s.Admin {
			renderCatalogAdmin(m, s)
		}
		return m.Err()
	})
}

func renderConceptResult(ctx context.Context, m *components.Markup, s BackofficeSnapshot, res planner.ConceptResult) {
	concept := s.Concept(res.ConceptID)
	inst := s.Instance(res.ConceptID)
	id := esc(res.ConceptID)

	m.Rawf(`<article class="concept space-y-3 rounded-xl p-4" data-concept="%s" style="border-top:6px solid %s">`, id, esc(res.Color))
	m.Rawf(`<h3 class="text-lg font-semibold">%s</h3>`, esc(res.ConceptName))
	if concept.HowToURL != "" {
		m.Rawf(`<a href="%s" target="_blank" rel="noopener">Werkwijze</a>`, components.URL(concept.HowToURL))
	}

	m.Raw(`<div class="flex gap-4">`)
	m.Rawf(`<form data-api="/api/event/concepts/%s/people"><label>Personen <input type="number" min="0" name="people" value="%s"></label><button type="submit">Zet</button></form>`,
		id, PeopleValue(inst))
	m.Rawf(`<form data-api="/api/event/concepts/%s/split"><label>Aandeel %% <input type="number" min="0" max="100" name="percent" value="%d"></label><button type="submit">Zet</button></form>`,
		id, s.SplitPercent(res.ConceptID))
	m.Raw(`</div>`)

	if len(concept.Options) > 0 {
		m.Raw(`<div class="options space-y-1">`)
		for _, opt := range concept.Options {
			key := esc(opt.Key)
			enabled := inst != nil && inst.EnabledOptions[opt.Key]
			weight := 0.0
			if inst != nil {
				weight = inst.OptionWeights[opt.Key]
			}
			checked := ""
			if enabled {
				checked = " checked"
			}
			m.Rawf(`<div class="flex gap-2" data-option="%s">`, key)
			m.Rawf(`<form data-api="/api/event/concepts/%s/options/%s/enabled"><label><input type="checkbox" name="enabled" onchange="this.form.requestSubmit()"%s> %s</label></form>`,
				id, key, checked, esc(opt.Label))
			if enabled {
				m.Rawf(`<form data-api="/api/event/concepts/%s/options/%s/weight"><input type="number" min="0" max="100" step="0.01" name="weight" value="%s"><button type="submit">%%</button></form>`,
					id, key, strconv.FormatFloat(weight, 'f', -1, 64))
			}
			m.Raw(`</div>`)
		}
		m.Rawf(`<form data-api="/api/event/concepts/%s/options/equalize"><button type="submit">Opties gelijk verdelen</button></form>`, id)
		m.Raw(`</div>`)
	}

	m.Raw(`<table><thead><tr><th>Product</th><th>Categorie</th><th>Eenheid</th><th>Exact</th><th>Bestellen</th></tr></thead><tbody>`)
	for _, item := range res.Items {
		m.Rawf(`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>`,
			esc(item.Name), esc(CategoryLabel(concept, item.Category)), esc(item.Unit), FormatAmount(item.Raw), item.Shown)
	}
	m.Raw(`</tbody></table></article>`)
}

func renderAggregate(m *components.Markup, rows []planner.AggregateRow) {
	m.Raw(`<section id="order" class="space-y-2"><h2 class="text-xl font-semibold">Bestellijst</h2>`)
	if len(rows) == 0 {
		m.Raw(`<p>Nog niets te bestellen. Zet een concept aan en vul personen in.</p></section>`)
		return
	}
	m.Raw(`<a href="/api/order.csv" download>Download CSV</a>`)
	m.Raw(`<table><thead><tr><th>Product</th><th>Eenheid</th><th>Aantal</th><th>Bronnen</th></tr></thead><tbody>`)
	for _, row := range rows {
		m.Rawf(`<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>`,
			esc(row.Name), esc(row.Unit), row.Shown, esc(SourcesLabel(row.Sources)))
	}
	m.Raw(`</tbody></table></section>`)
}

func renderCatalogAdmin(m *components.Markup, s BackofficeSnapshot) {
	m.Raw(`<section id="catalog-admin" class="space-y-4"><h2 class="text-xl font-semibold">Conceptbeheer</h2>`)
	m.Rawf(`<form data-api="/api/concepts" class="flex gap-2"><input name="name" placeholder="%s"><input type="color" name="color" value="%s"><button type="submit">Concept toevoegen</button></form>`,
		esc(planner.DefaultConceptName), esc(s.NextColor()))
	m.Raw(`<form method="post" action="/api/import/pdf" enctype="multipart/form-data" class="flex gap-2"><input type="file" name="file" accept="application/pdf"><button type="submit">PDF inlezen</button></form>`)

	for _, c := range s.State.Concepts {
		id := esc(c.ID)
		m.Rawf(`<details class="rounded-xl p-3" style="border-left:6px solid %s"><summary>%s</summary>`, esc(c.Color), esc(c.Name))
		m.Rawf(`<form data-api="/api/concepts/%s" data-method="DELETE"><button type="submit">Concept verwijderen</button></form>`, id)
		renderProductRows(m, c.ID, planner.BasisKey, "Basis", c.Basis)
		for _, opt := range c.Options {
			renderProductRows(m, c.ID, opt.Key, opt.Label, opt.Products)
			m.Rawf(`<form data-api="/api/concepts/%s/categories/%s" data-method="DELETE"><button type="submit">Categorie %s verwijderen</button></form>`,
				id, esc(opt.Key), esc(opt.Label))
		}
		m.Rawf(`<form data-api="/api/concepts/%s/products" class="flex gap-2"><input name="category" placeholder="categorie" value="%s"><input name="name" placeholder="%s"><input name="unit" placeholder="%s"><input type="number" min="0" step="0.01" name="basePer100" placeholder="per 100"><button type="submit">Product toevoegen</button></form>`,
			id, planner.BasisKey, esc(planner.DefaultProductName), esc(planner.DefaultProductUnit))
		m.Raw(`</details>`)
	}
	m.Raw(`</section>`)
}

func renderProductRows(m *components.Markup, conceptID, key, label string, products []planner.Product) {
	m.Rawf(`<h4 class="font-semibold">%s</h4><table><tbody>`, esc(label))
	for _, p := range products {
		path := fmt.Sprintf("/api/concepts/%s/categories/%s/products/%s", conceptID, key, p.ID)
		m.Rawf(`<tr><td>%s</td><td>%s</td><td><form data-api="%s" data-method="PUT"><input type="number" min="0" step="0.01" name="basePer100" value="%s"><button type="submit">Zet</button></form></td>`,
			esc(p.Name), esc(p.Unit), esc(path), strconv.FormatFloat(p.BasePer100, 'f', -1, 64))
		m.Rawf(`<td><form data-api="%s" data-method="DELETE"><button type="submit">Verwijder</button></form></td></tr>`, esc(path))
	}
	m.Raw(`</tbody></table>`)
}
