package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"stadslab/internal/views/components"
)

// HomeData summarises the planner and the manuals for the start page.
type HomeData struct {
	EventName      string
	TotalPeople    int
	ActiveConcepts int
	Manuals        int
}

// Home renders the start page.
func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Rawf(`<header><h1 class="text-3xl font-semibold">%s</h1><p>Planning en handboeken voor de foodtrucks.</p></header>`,
			components.Esc(data.EventName))
		m.Raw(`<section class="grid grid-cols-3 gap-4">`)
		m.Component(ctx, components.StatCard("Personen", strconv.Itoa(data.TotalPeople), "over alle actieve concepten"))
		m.Component(ctx, components.StatCard("Actieve concepten", strconv.Itoa(data.ActiveConcepts), ""))
		m.Component(ctx, components.StatCard("Handboeken", strconv.Itoa(data.Manuals), "trucks met werkinstructies"))
		m.Raw(`</section>`)
		m.Raw(`<section class="flex gap-4">`)
		m.Raw(`<a href="/backoffice" class="rounded-lg px-4 py-2">Naar de backoffice</a>`)
		m.Raw(`<a href="/manuals" class="rounded-lg px-4 py-2">Naar de handboeken</a>`)
		m.Raw(`<a href="/api/order.csv" class="rounded-lg px-4 py-2">Bestellijst (CSV)</a>`)
		m.Raw(`</section>`)
		return m.Err()
	})
}
