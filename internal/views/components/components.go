package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"stadslab/internal/planner"
	"stadslab/internal/views/theme"
)

// NavLink is one entry of the top navigation.
type NavLink struct {
	Label   string
	Path    string
	Section string
}

// NavData describes the navigation bar state.
type NavData struct {
	Active string
	Admin  bool
	Theme  string
	Links  []NavLink
}

// DefaultLinks are the main sections of the application.
var DefaultLinks = []NavLink{
	{Label: "Start", Path: "/", Section: "home"},
	{Label: "Backoffice", Path: "/backoffice", Section: "backoffice"},
	{Label: "Handboeken", Path: "/manuals", Section: "manuals"},
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// Nav renders the top navigation with the admin login state.
func Nav(data NavData) templ.Component {
	links := data.Links
	if len(links) == 0 {
		links = DefaultLinks
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Raw(`<nav class="flex items-center gap-4 px-6 py-3">`)
		for _, link := range links {
			m.Rawf(`<a href="%s" data-nav-section="%s" data-state="%s" class="font-medium">%s</a>`,
				URL(link.Path), Esc(link.Section), linkState(link.Section, data.Active), Esc(link.Label))
		}
		m.Raw(`<span class="ml-auto"></span>`)
		m.Raw(`<form data-api="/preferences"><select name="theme" aria-label="Thema" onchange="this.form.requestSubmit()">`)
		for _, opt := range theme.Options() {
			selected := ""
			if opt.Value == data.Theme {
				selected = " selected"
			}
			m.Rawf(`<option value="%s"%s>%s</option>`, Esc(opt.Value), selected, Esc(opt.Label))
		}
		m.Raw(`</select></form>`)
		if data.Admin {
			m.Raw(`<form method="post" action="/logout"><button type="submit">Uitloggen</button></form>`)
		} else {
			m.Raw(`<a href="/login" data-nav-section="login">Beheer</a>`)
		}
		m.Raw(`</nav>`)
		return m.Err()
	})
}

// StatCard renders a single labelled figure.
func StatCard(label, value, hint string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Rawf(`<div class="stat-card rounded-xl p-4"><p class="text-sm">%s</p><p class="text-2xl font-semibold">%s</p>`, Esc(label), Esc(value))
		if hint != "" {
			m.Rawf(`<p class="text-xs">%s</p>`, Esc(hint))
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}

// ProgressBar renders a percentage bar.
func ProgressBar(label string, percent int) templ.Component {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Rawf(`<div class="progress" role="progressbar" aria-label="%s" aria-valuenow="%d" aria-valuemin="0" aria-valuemax="100">`, Esc(label), percent)
		m.Rawf(`<div class="progress-fill" style="width:%d%%"></div><span>%d%%</span></div>`, percent, percent)
		return m.Err()
	})
}

// SplitBar renders the people split as coloured segments.
func SplitBar(shares []planner.SplitShare) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		m.Raw(`<div class="split-bar flex h-6 w-full overflow-hidden rounded">`)
		for _, s := range shares {
			m.Rawf(`<div title="%s" data-concept="%s" style="width:%d%%;background:%s"></div>`,
				Esc(fmt.Sprintf("%s: %d (%d%%)", s.Name, s.People, s.Percent)), Esc(s.ConceptID), s.Percent, Esc(s.Color))
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}

// Flash renders a dismissable message; empty messages render nothing.
func Flash(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, `<div class="flash" role="alert">%s</div>`, Esc(message))
		return err
	})
}
