package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	api "github.com/mind-engage/pizzaquiz/internal/api/http"
	"github.com/mind-engage/pizzaquiz/internal/retention"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		a, err := newApp(ctx, cfg)
		cancel()
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.openImages(); err != nil {
			return err
		}

		sweeper := retention.New(a.trainer, cfg.PruneInterval, a.log)
		if cfg.RetentionIdleTTL > 0 {
			if err := sweeper.Start(); err != nil {
				return err
			}
			defer sweeper.Stop()
		}

		srv := &http.Server{
			Addr: cfg.HTTPAddr,
			Handler: api.NewRouter(api.Deps{
				Trainer:       a.trainer,
				Identity:      a.identity,
				CookieName:    cfg.IdentityCookie,
				Images:        a.images,
				Log:           a.log,
				CORSOrigins:   cfg.CORSOrigins,
				AdminUser:     cfg.AdminUser,
				AdminPassHash: cfg.AdminPassHash,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.log.WithFields(logrus.Fields{
				"addr":  cfg.HTTPAddr,
				"mode":  cfg.Mode,
				"store": cfg.StoreDriver,
				"items": a.catalog.Len(),
			}).Info("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			a.log.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (overrides HTTP_ADDR)")
}
