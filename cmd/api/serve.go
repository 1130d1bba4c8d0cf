package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	httpadp "realreselling/internal/adapter/http"
	"realreselling/internal/adapter/middleware"
	"realreselling/internal/adapter/repository/gormrepo"
	"realreselling/internal/config"
	"realreselling/internal/infrastructure/cache"
	"realreselling/internal/infrastructure/capi"
	"realreselling/internal/infrastructure/db"
	"realreselling/internal/infrastructure/objectstore"
	"realreselling/internal/infrastructure/webhook"
	"realreselling/internal/logger"
	"realreselling/internal/metrics"
	"realreselling/internal/notify"
	ucLead "realreselling/internal/usecase/lead"
	ucSubmission "realreselling/internal/usecase/submission"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var autoMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "migrate the schema before serving")
	RootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the intake, approval and confirmation endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(ctx, conf)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.NewSublogger("serve")

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	m := metrics.New()
	dispatcher := notify.NewDispatcher(cfg.NotifyTimeout, m)

	// a nil store makes intake answer 500 instead of failing at boot
	var store ucSubmission.ImageStore
	if cfg.StorageConfigured() {
		s3store, err := objectstore.NewS3Store(ctx, cfg)
		if err != nil {
			return err
		}
		store = s3store
	} else {
		log.Warn("S3_* env incomplete, intake will answer 500")
	}

	hook := webhook.New(cfg.WebhookURL, cfg.WebhookSecret, cfg.NotifyTimeout)
	leadHook := webhook.New(cfg.LeadWebhookURL, cfg.WebhookSecret, cfg.NotifyTimeout).WithSink("lead-webhook")
	ads := capi.New(capi.Options{
		APIVersion:    cfg.MetaAPIVersion,
		PixelID:       cfg.MetaPixelID,
		AccessToken:   cfg.MetaAccessToken,
		TestEventCode: cfg.MetaTestEventCode,
		CountryCode:   cfg.PhoneCountryCode,
		Timeout:       cfg.NotifyTimeout,
	})
	if !cfg.AdsConfigured() {
		log.Info("META_PIXEL_ID or META_ACCESS_TOKEN not set, conversion events are skipped")
	}

	subs := ucSubmission.NewUsecase(gormrepo.NewSubmissionRepository(gdb), store, hook, ads, dispatcher, m, ucSubmission.Settings{
		PublicBaseURL: cfg.PublicBaseURL,
		Price:         cfg.ProductPrice,
		Currency:      cfg.ProductCurrency,
	})
	leads := ucLead.NewUsecase(leadHook, dispatcher)

	routes := httpadp.Routes{
		Submissions: subs,
		Leads:       leads,
		Metrics:     m.Handler(),
	}
	if cfg.AdsConfigured() {
		routes.PixelID = cfg.MetaPixelID
	}
	if rdb := cache.OpenOptionalRedis(cfg.RedisAddr, cfg.RedisDB); rdb != nil {
		defer rdb.Close()
		routes.Idempotency = middleware.Idempotency(rdb, cfg.IdempotencyTTL())
	}

	e := httpadp.NewEcho()
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(logger.NewSublogger("access")))
	httpadp.Register(e, routes)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	return run(ctx, e, srv, dispatcher)
}

// run serves until ctx is cancelled, then drains requests and pending notifications.
func run(ctx context.Context, e *echo.Echo, srv *http.Server, dispatcher *notify.Dispatcher) error {
	log := logger.NewSublogger("serve")

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		errc <- e.StartServer(srv)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown")
	}
	dispatcher.Wait()
	log.Info("stopped")
	return nil
}
