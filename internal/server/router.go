package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stadslab/internal/handlers"
	applog "stadslab/internal/log"
)

type route struct {
	pattern string
	handler http.Handler
}

func public(pattern string, h http.HandlerFunc) route {
	return route{pattern: pattern, handler: h}
}

func adminAPI(pattern string, h http.HandlerFunc) route {
	return route{pattern: pattern, handler: handlers.RequireAdminAPI(h)}
}

func routes() []route {
	return []route{
		public("GET /healthz", handlers.Health),
		public("GET /{$}", handlers.Home),
		public("GET /login", handlers.Login),
		public("POST /login", handlers.Login),
		public("GET /logout", handlers.Logout),
		public("POST /logout", handlers.Logout),
		public("POST /preferences", handlers.UpdatePreferences),

		public("GET /backoffice", handlers.BackofficePage),
		public("GET /api/event", handlers.EventState),
		public("POST /api/event/name", handlers.SetEventName),
		public("POST /api/event/concepts/{id}/toggle", handlers.ToggleConcept),
		public("POST /api/event/concepts/{id}/people", handlers.SetPeople),
		public("POST /api/event/concepts/{id}/options/{key}/enabled", handlers.SetOptionEnabled),
		public("POST /api/event/concepts/{id}/options/{key}/weight", handlers.SetOptionWeight),
		public("POST /api/event/concepts/{id}/options/equalize", handlers.EqualizeWeights),
		public("POST /api/event/concepts/{id}/split", handlers.SetSplitPercent),
		public("POST /api/event/split/equalize", handlers.EqualizeSplit),
		public("GET /api/order.csv", handlers.OrderCSV),

		adminAPI("GET /api/concepts", handlers.ListConcepts),
		adminAPI("POST /api/concepts", handlers.CreateConcept),
		adminAPI("DELETE /api/concepts/{id}", handlers.DeleteConcept),
		adminAPI("POST /api/concepts/{id}/products", handlers.CreateProduct),
		adminAPI("PUT /api/concepts/{id}/categories/{key}/products/{pid}", handlers.UpdateProduct),
		adminAPI("DELETE /api/concepts/{id}/categories/{key}/products/{pid}", handlers.DeleteProduct),
		adminAPI("DELETE /api/concepts/{id}/categories/{key}", handlers.DeleteCategory),
		adminAPI("POST /api/import/pdf", handlers.ImportPDF),

		public("GET /manuals", handlers.ManualsPage),
		public("GET /manuals/{id}", handlers.ManualsPage),
		public("GET /api/manuals", handlers.ListManuals),
		public("GET /api/manuals/{id}", handlers.GetManual),
		public("POST /api/manuals/{id}/progress/{section}/{item}", handlers.ToggleProgress),
		public("POST /api/manuals/{id}/progress/reset", handlers.ResetProgress),
		public("GET /api/manuals/{id}/packlist.csv", handlers.PacklistCSV),
		adminAPI("POST /api/manuals", handlers.CreateManual),
		adminAPI("PUT /api/manuals/{id}", handlers.ReplaceManual),
		adminAPI("DELETE /api/manuals/{id}", handlers.DeleteManual),
		adminAPI("POST /api/manuals/{id}/{collection}", handlers.AddManualItem),
		adminAPI("DELETE /api/manuals/{id}/{collection}/{itemID}", handlers.RemoveManualItem),
	}
}

// newRouter registers every route. A nil gatherer leaves /metrics out.
func newRouter(gatherer prometheus.Gatherer) *http.ServeMux {
	ctx := context.Background()
	mux := http.NewServeMux()
	applog.Debug(ctx, "registering http routes")
	for _, rt := range routes() {
		mux.Handle(rt.pattern, rt.handler)
	}
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		applog.Debug(ctx, "route registered", "path", "/metrics")
	}
	applog.Debug(ctx, "http routes registered", "count", len(routes()))
	return mux
}
