package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"stadslab/internal/manuals"
	"stadslab/internal/views/components"
)

// ManualsPage is the front office view of one truck's handbook.
type ManualsPage struct {
	Manuals  []manuals.Manual
	Selected *manuals.Manual
	Progress []manuals.SectionProgress
	Admin    bool
}

// ProgressOf returns the progress of section, or an empty one.
func (p ManualsPage) ProgressOf(section manuals.Section) manuals.SectionProgress {
	for _, sp := range p.Progress {
		if sp.Section == section {
			return sp
		}
	}
	return manuals.SectionProgress{Section: section, Done: map[string]bool{}}
}

var sectionTitles = map[manuals.Section]string{
	manuals.SectionBuildUp:  "Opbouw",
	manuals.SectionTearDown: "Afbouw",
	manuals.SectionPacklist: "Paklijst",
}

// Manuals renders the truck list and the selected handbook.
func Manuals(p ManualsPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<div class="grid grid-cols-4 gap-6"><aside class="space-y-2"><h2 class="font-semibold">Trucks</h2><ul>`)
		for _, manual := range p.Manuals {
			state := "inactive"
			if p.Selected != nil && p.Selected.ID == manual.ID {
				state = "active"
			}
			m.Rawf(`<li><a href="/manuals/%s" data-state="%s">%s</a></li>`, components.Segment(manual.ID), state, esc(manual.Name))
		}
		m.Raw(`</ul>`)
		if p.Admin {
			m.Raw(`<form data-api="/api/manuals"><button type="submit">Truck toevoegen</button></form>`)
		}
		m.Raw(`</aside><div class="col-span-3 space-y-6">`)
		if p.Selected == nil {
			m.Raw(`<p>Er zijn nog geen handboeken.</p>`)
		} else {
			renderManual(ctx, m, p, *p.Selected)
		}
		m.Raw(`</div></div>`)
		return m.Err()
	})
}

func renderManual(ctx context.Context, m *components.Markup, p ManualsPage, manual manuals.Manual) {
	id := esc(manual.ID)
	m.Rawf(`<header><h1 class="text-2xl font-semibold">%s</h1><p>%s</p></header>`, esc(manual.Name), esc(manual.Description))
	if manual.TruckPhotoURL != "" {
		m.Rawf(`<img src="%s" alt="%s" class="rounded-xl">`, components.URL(manual.TruckPhotoURL), esc(manual.Name))
	}
	if p.Admin {
		m.Rawf(`<form data-api="/api/manuals/%s" data-method="DELETE"><button type="submit">Truck verwijderen</button></form>`, id)
	}

	m.Raw(`<section><h2 class="text-xl font-semibold">Infra</h2><dl>`)
	m.Rawf(`<dt>Stroom</dt><dd>%s</dd><dt>Water</dt><dd>%s</dd><dt>Gas</dt><dd>%s</dd>`,
		esc(DefaultDash(manual.Infra.Power)), esc(DefaultDash(manual.Infra.Water)), esc(DefaultDash(manual.Infra.Gas)))
	m.Raw(`</dl></section>`)

	m.Raw(`<section><h2 class="text-xl font-semibold">Menu</h2><table><tbody>`)
	for _, item := range manual.Menu {
		m.Rawf(`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td>`,
			esc(item.Name), esc(DefaultDash(item.Price)), esc(item.Description), esc(strings.Join(item.Allergens, ", ")))
		renderRemove(m, p.Admin, manual.ID, manuals.CollectionMenu, item.ID)
		m.Raw(`</tr>`)
	}
	m.Raw(`</tbody></table>`)
	renderAdd(m, p.Admin, manual.ID, manuals.CollectionMenu, "Gerecht toevoegen")
	m.Raw(`</section>`)

	m.Raw(`<section><h2 class="text-xl font-semibold">Apparatuur</h2><table><tbody>`)
	for _, eq := range manual.Equipment {
		m.Rawf(`<tr><td>%s</td><td>%s</td><td>%s</td>`, esc(eq.Name), esc(eq.Specs), esc(eq.Note))
		renderRemove(m, p.Admin, manual.ID, manuals.CollectionEquipment, eq.ID)
		m.Raw(`</tr>`)
	}
	m.Raw(`</tbody></table>`)
	renderAdd(m, p.Admin, manual.ID, manuals.CollectionEquipment, "Apparaat toevoegen")
	m.Raw(`</section>`)

	if manual.Logistics != "" {
		m.Rawf(`<section><h2 class="text-xl font-semibold">Logistiek</h2><p>%s</p></section>`, esc(manual.Logistics))
	}

	m.Rawf(`<form data-api="/api/manuals/%s/progress/reset"><button type="submit">Voortgang van vandaag wissen</button></form>`, id)
	renderChecklist(ctx, m, p, manual, manuals.SectionBuildUp, manual.BuildUp)
	renderChecklist(ctx, m, p, manual, manuals.SectionTearDown, manual.TearDown)
	renderPacklist(ctx, m, p, manual)

	if manual.Notes != "" {
		m.Rawf(`<section><h2 class="text-xl font-semibold">Notities</h2><p>%s</p></section>`, esc(manual.Notes))
	}
}

func renderChecklist(ctx context.Context, m *components.Markup, p ManualsPage, manual manuals.Manual, section manuals.Section, items []manuals.ChecklistItem) {
	progress := p.ProgressOf(section)
	m.Rawf(`<section data-section="%s"><h2 class="text-xl font-semibold">%s</h2>`, section, sectionTitles[section])
	m.Component(ctx, components.ProgressBar(sectionTitles[section], progress.Percent))
	m.Raw(`<ul>`)
	for _, item := range items {
		m.Raw(`<li class="flex gap-2">`)
		renderToggle(m, manual.ID, section, item.ID, progress.Done[item.ID], item.Text)
		if item.Required {
			m.Raw(`<span class="required">verplicht</span>`)
		}
		renderRemove(m, p.Admin, manual.ID, manuals.Collection(section), item.ID)
		m.Raw(`</li>`)
	}
	m.Raw(`</ul>`)
	renderAdd(m, p.Admin, manual.ID, manuals.Collection(section), "Stap toevoegen")
	m.Raw(`</section>`)
}

func renderPacklist(ctx context.Context, m *components.Markup, p ManualsPage, manual manuals.Manual) {
	progress := p.ProgressOf(manuals.SectionPacklist)
	m.Raw(`<section data-section="paklijst"><h2 class="text-xl font-semibold">Paklijst</h2>`)
	m.Component(ctx, components.ProgressBar("Paklijst", progress.Percent))
	m.Rawf(`<a href="/api/manuals/%s/packlist.csv" download>Download CSV</a>`, components.Segment(manual.ID))
	for _, group := range manuals.GroupPacklist(manual.Packlist) {
		m.Rawf(`<h3 class="font-semibold">%s</h3><ul>`, esc(group.Category))
		for _, item := range group.Items {
			label := item.Name
			if item.Quantity != nil {
				label += " - " + FormatAmount(*item.Quantity)
				if item.Unit != "" {
					label += " " + item.Unit
				}
			}
			if item.Note != "" {
				label += " (" + item.Note + ")"
			}
			m.Raw(`<li class="flex gap-2">`)
			renderToggle(m, manual.ID, manuals.SectionPacklist, item.ID, progress.Done[item.ID], label)
			if item.Required {
				m.Raw(`<span class="required">verplicht</span>`)
			}
			renderRemove(m, p.Admin, manual.ID, manuals.CollectionPacklist, item.ID)
			m.Raw(`</li>`)
		}
		m.Raw(`</ul>`)
	}
	renderAdd(m, p.Admin, manual.ID, manuals.CollectionPacklist, "Item toevoegen")
	m.Raw(`</section>`)
}

func renderToggle(m *components.Markup, manualID string, section manuals.Section, itemID string, done bool, label string) {
	checked := ""
	if done {
		checked = " checked"
	}
	m.Rawf(`<form data-api="/api/manuals/%s/progress/%s/%s"><label><input type="checkbox" name="done" onchange="this.form.requestSubmit()"%s> %s</label></form>`,
		esc(manualID), section, esc(itemID), checked, esc(label))
}

func renderAdd(m *components.Markup, admin bool, manualID string, c manuals.Collection, label string) {
	if !admin {
		return
	}
	m.Rawf(`<form data-api="/api/manuals/%s/%s"><button type="submit">%s</button></form>`, esc(manualID), c, esc(label))
}

func renderRemove(m *components.Markup, admin bool, manualID string, c manuals.Collection, itemID string) {
	if !admin {
		return
	}
	m.Rawf(`<form data-api="/api/manuals/%s/%s/%s" data-method="DELETE"><button type="submit">Verwijder</button></form>`,
		esc(manualID), c, esc(itemID))
}
