package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"stadslab/internal/views/components"
)

// LoginPartial renders the admin login form.
func LoginPartial(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<section id="login" class="mx-auto max-w-sm space-y-4">`)
		m.Raw(`<h1 class="text-2xl font-semibold">Beheer</h1>`)
		m.Component(ctx, components.Flash(message))
		m.Raw(`<form method="post" action="/login" class="space-y-3">`)
		m.Raw(`<label class="block">Wachtwoord <input type="password" name="password" autocomplete="current-password" required></label>`)
		m.Raw(`<button type="submit">Inloggen</button></form></section>`)
		return m.Err()
	})
}
