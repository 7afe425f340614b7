package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	authmw "github.com/mind-engage/pizzaquiz/internal/auth/middleware"
	"github.com/mind-engage/pizzaquiz/internal/catalog"
	"github.com/mind-engage/pizzaquiz/internal/config"
	"github.com/mind-engage/pizzaquiz/internal/logging"
	"github.com/mind-engage/pizzaquiz/internal/quiz"
	"github.com/mind-engage/pizzaquiz/internal/storage"
	"github.com/mind-engage/pizzaquiz/internal/store"
	"github.com/mind-engage/pizzaquiz/internal/trainer"
)

const devIdentitySecret = "pizzaquiz-dev-secret"

// app holds everything a command needs, built once from config.
type app struct {
	cfg      config.Config
	log      *logrus.Logger
	catalog  *catalog.Catalog
	store    store.Store
	trainer  *trainer.Service
	identity *authmw.IdentityService
	images   *storage.FSStore
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg.CatalogXLSX)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, store.Options{Driver: cfg.StoreDriver, DSN: cfg.DBDSN, File: cfg.StoreFile})
	if err != nil {
		return nil, err
	}

	secret := cfg.IdentitySecret
	if secret == "" {
		log.Warn("IDENTITY_SECRET not set; using development secret")
		secret = devIdentitySecret
	}

	svc := trainer.New(st, cat, quiz.NewSelector(quiz.NewRand(cfg.SelectorSeed)),
		trainer.WithLogger(log),
		trainer.WithQuizReadyViews(cfg.QuizReadyViews),
		trainer.WithRetention(trainer.Retention{
			DeleteOnReset: cfg.ResetPolicy == config.ResetDelete,
			IdleTTL:       cfg.RetentionIdleTTL,
		}),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		catalog:  cat,
		store:    st,
		trainer:  svc,
		identity: authmw.NewIdentityService(secret, cfg.IdentityTTL),
	}, nil
}

// openImages is only needed by the server.
func (a *app) openImages() error {
	bs, err := storage.NewFSStore(a.cfg.BlobBasePath)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}
	a.images = bs
	return nil
}

func (a *app) Close() error { return a.store.Close() }

func loadCatalog(xlsxPath string) (*catalog.Catalog, error) {
	if xlsxPath == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.LoadXLSX(xlsxPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", xlsxPath, err)
	}
	return c, nil
}
