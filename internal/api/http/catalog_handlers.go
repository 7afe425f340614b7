package http

import (
	"net/http"

	"github.com/mind-engage/pizzaquiz/internal/trainer"
)

// GET /api/catalog
func CatalogHandler(svc *trainer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := svc.Catalog()
		writeJSON(w, http.StatusOK, map[string]any{
			"items":      c.Items(),
			"categories": c.Categories(),
		})
	}
}

func ReadyHandler(svc *trainer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.Stats(r.Context()); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
