// Package layout renders the document shell shared by every page.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"stadslab/internal/views/components"
	"stadslab/internal/views/theme"
)

const baseStyles = `body{font-family:system-ui,sans-serif}` +
	`.progress{position:relative;height:1.25rem;background:#e2e8f0;border-radius:.5rem;overflow:hidden}` +
	`.progress-fill{height:100%;background:#38bdf8}` +
	`.progress span{position:absolute;inset:0;text-align:center;font-size:.75rem}` +
	`[data-state=active]{text-decoration:underline}` +
	`.flash{padding:.75rem;border-radius:.5rem;background:#fef3c7;color:#78350f}` +
	`table{width:100%;border-collapse:collapse}td,th{padding:.25rem .5rem;text-align:left}`

// apiScript posts forms marked with data-api as JSON and reloads the page.
const apiScript = `document.addEventListener("submit",async function(e){` +
	`var f=e.target;if(!f.dataset.api)return;e.preventDefault();` +
	`var body={};new FormData(f).forEach(function(v,k){body[k]=v});` +
	`f.querySelectorAll("input[type=checkbox]").forEach(function(c){body[c.name]=c.checked});` +
	`var res=await fetch(f.dataset.api,{method:f.dataset.method||"POST",headers:{"Content-Type":"application/json"},body:JSON.stringify(body)});` +
	`if(!res.ok){var msg=await res.json().catch(function(){return{}});alert(msg.error||res.statusText);return}` +
	`location.reload()});`

func bodyClass(th theme.WorkspaceTheme) string {
	if th.BodyClass == "" {
		return theme.Resolve(theme.DefaultKey).BodyClass
	}
	return th.BodyClass
}

func mainClass(th theme.WorkspaceTheme) string {
	return "mx-auto max-w-6xl space-y-6 px-6 py-8 " + th.ShellClass
}

// Layout wraps content in the document shell with nav on top.
func Layout(title string, nav, content templ.Component, th theme.WorkspaceTheme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(w)
		m.Raw(`<!DOCTYPE html><html lang="nl"><head><meta charset="utf-8">`)
		m.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Rawf(`<title>%s</title>`, components.Esc(title))
		m.Rawf(`<style>%s</style>`, baseStyles)
		m.Rawf(`<script>%s</script>`, apiScript)
		m.Rawf(`</head><body class="%s" data-theme="%s">`, components.Esc(bodyClass(th)), components.Esc(th.Key))
		m.Component(ctx, nav)
		m.Rawf(`<main class="%s">`, components.Esc(mainClass(th)))
		m.Component(ctx, content)
		m.Raw(`</main></body></html>`)
		return m.Err()
	})
}
