package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/pizzaquiz/internal/auth"
	authmw "github.com/mind-engage/pizzaquiz/internal/auth/middleware"
	"github.com/mind-engage/pizzaquiz/internal/rbac"
	"github.com/mind-engage/pizzaquiz/internal/storage"
	"github.com/mind-engage/pizzaquiz/internal/trainer"
)

type Deps struct {
	Trainer    *trainer.Service
	Identity   *authmw.IdentityService
	CookieName string
	Images     storage.BlobStore
	Log        logrus.FieldLogger

	CORSOrigins   []string
	AdminUser     string
	AdminPassHash string
	Timeout       time.Duration
}

func NewRouter(d Deps) http.Handler {
	if d.CookieName == "" {
		d.CookieName = "user_id"
	}
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(d.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(d.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", ReadyHandler(d.Trainer))

	r.Get("/images/{name}", ImageHandler(d.Images))

	// Player API: cookie identity, role player.
	r.Route("/api", func(pr chi.Router) {
		pr.Use(authmw.Identify(d.Identity, d.CookieName))
		h := &quizHandlers{svc: d.Trainer, ids: d.Identity, cookie: d.CookieName, images: d.Images, log: d.Log}

		pr.Get("/catalog", CatalogHandler(d.Trainer))
		pr.With(rbac.Require(rbac.PermReview)).Get("/review", h.review)
		pr.With(rbac.Require(rbac.PermQuiz)).Get("/quiz", h.quiz)
		pr.With(rbac.Require(rbac.PermSubmit)).Post("/quiz/submit", h.submit)
		pr.With(rbac.Require(rbac.PermStatus)).Get("/status", h.status)
		pr.With(rbac.Require(rbac.PermReset)).Post("/reset", h.reset)
	})

	// Operator surface: basic auth, role operator.
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(auth.OperatorBasicAuth(d.AdminUser, d.AdminPassHash))
		ar.Use(rbac.RequireAny(rbac.PermStats, rbac.PermPrune, rbac.PermImageUpload))
		ar.With(rbac.Require(rbac.PermStats)).Get("/stats", StatsHandler(d.Trainer))
		ar.With(rbac.Require(rbac.PermPrune)).Post("/prune", PruneHandler(d.Trainer, d.Log))
		ar.With(rbac.Require(rbac.PermImageUpload)).Put("/images/{name}", UploadImageHandler(d.Trainer, d.Images))
	})

	return r
}
