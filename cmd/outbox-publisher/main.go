package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/murkotick/price-comparator/internal/app/pricing/repo"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	committer "github.com/murkotick/price-comparator/internal/pkg/committer"
	"github.com/murkotick/price-comparator/internal/pkg/config"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
	"github.com/murkotick/price-comparator/internal/pkg/metrics"
	"github.com/murkotick/price-comparator/internal/pkg/pubsub"
	"github.com/murkotick/price-comparator/internal/transport/http/admin"
)

const serviceName = "outbox-publisher"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": serviceName,
	})

	spClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		logg.Error(ctx, "failed to create spanner client", err)
		os.Exit(1)
	}
	defer spClient.Close()

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub client", err)
		}
	}()

	reg := metrics.NewRegistry()
	service, err := NewService(ServiceParams{
		Config:    cfg,
		Logger:    logg,
		Reader:    repo.NewOutboxReader(spClient),
		Marker:    repo.NewOutboxRepo(),
		Committer: committer.NewAdapter(spClient),
		PubSub:    pubsubClient,
		Metrics:   metrics.NewOutboxMetrics(reg),
		Clock:     clock.RealClock{},
	})
	if err != nil {
		logg.Error(ctx, "failed to create outbox publisher", err)
		os.Exit(1)
	}

	adminSrv := &http.Server{
		Addr: cfg.App.AdminAddr,
		Handler: admin.NewRouter(cfg.App.Env, reg, logg, map[string]admin.ReadyCheck{
			"pubsub": pubsubClient.Ping,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logg.Info(ctx, "starting outbox publisher")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return service.Run(gctx)
	})
	g.Go(func() error {
		if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		return adminSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "outbox publisher stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "outbox publisher shutting down gracefully")
}
