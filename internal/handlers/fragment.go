package handlers

import "net/http"

// isFragment reports whether the caller wants the page body without the
// layout: HTMX requests, boosted links and ?fragment=1.
func isFragment(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true" {
		return true
	}
	return r.URL.Query().Get("fragment") == "1"
}
