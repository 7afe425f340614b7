package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mind-engage/pizzaquiz/internal/trainer"
)

// GET /admin/stats
func StatsHandler(svc *trainer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Stats(r.Context())
		if err != nil {
			http.Error(w, "count failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{
			"users": n,
			"items": svc.Catalog().Len(),
		})
	}
}

// POST /admin/prune
func PruneHandler(svc *trainer.Service, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Prune(r.Context(), time.Now())
		if err != nil {
			log.WithError(err).Error("manual prune failed")
			http.Error(w, "prune failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"removed": n})
	}
}
