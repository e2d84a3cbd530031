package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/murkotick/price-comparator/internal/app/pricing/queries"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/best_discounts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/best_value_products"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/find_substitutes"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/get_alert"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/list_alerts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/new_discounts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/optimize_basket"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/price_history"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/check_alerts"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/create_alert"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/delete_alert"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	committer "github.com/murkotick/price-comparator/internal/pkg/committer"
	"github.com/murkotick/price-comparator/internal/pkg/config"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
	"github.com/murkotick/price-comparator/internal/pkg/metrics"
	grpcpricing "github.com/murkotick/price-comparator/internal/transport/grpc/pricing"
	"github.com/murkotick/price-comparator/internal/transport/http/admin"
)

const serviceName = "price-comparator"

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		logg.Error(ctx, "failed to create spanner client", err)
		os.Exit(1)
	}
	defer client.Close()

	clk := clock.RealClock{}
	catalog := queries.NewSpannerCatalog(client)
	alerts := queries.NewSpannerAlertReader(client)
	alertRepo := repo.NewAlertRepo()
	outboxRepo := repo.NewOutboxRepo()
	cm := committer.NewAdapter(client)

	// CQRS wiring
	cmds := grpcpricing.Commands{
		CreateAlert: create_alert.NewInteractor(alertRepo, outboxRepo, cm, alerts, catalog, clk, cfg.Engine.DefaultCurrency),
		DeleteAlert: delete_alert.NewInteractor(alertRepo, outboxRepo, cm, alerts, clk),
		CheckAlerts: check_alerts.NewInteractor(alertRepo, outboxRepo, cm, alerts, catalog, clk, logg),
	}
	qrys := grpcpricing.Queries{
		OptimizeBasket: optimize_basket.NewHandler(catalog, clk, logg),
		Substitutes:    find_substitutes.NewHandler(catalog, clk, logg),
		BestValue:      best_value_products.NewHandler(catalog, clk),
		BestDiscounts:  best_discounts.NewHandler(catalog, clk, logg),
		NewDiscounts:   new_discounts.NewHandler(catalog, clk, logg),
		PriceHistory:   price_history.NewHandler(catalog, clk, cfg.Engine.HistoryLookbackDays),
		GetAlert:       get_alert.NewHandler(alerts, catalog, clk),
		ListAlerts:     list_alerts.NewHandler(alerts, catalog, clk),
	}
	h := grpcpricing.NewHandler(cmds, qrys, grpcpricing.Defaults{
		SubstituteLimit:    cfg.Engine.SubstituteLimit,
		BestDiscountsLimit: cfg.Engine.BestDiscountsLimit,
	})

	reg := metrics.NewRegistry()
	rpcMetrics := metrics.NewRPCMetrics(reg)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpcpricing.LoggingInterceptor(logg),
		rpcMetrics.UnaryServerInterceptor(),
	))
	grpcpricing.RegisterPriceComparatorServer(srv, h)

	adminSrv := &http.Server{
		Addr: cfg.App.AdminAddr,
		Handler: admin.NewRouter(cfg.App.Env, reg, logg, map[string]admin.ReadyCheck{
			"spanner": func(ctx context.Context) error { return pingSpanner(ctx, client) },
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.App.GRPCAddr)
	if err != nil {
		logg.Error(ctx, "failed to listen on "+cfg.App.GRPCAddr, err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info(logg.WithField(gctx, "addr", cfg.App.GRPCAddr), "gRPC server listening")
		return srv.Serve(lis)
	})
	g.Go(func() error {
		logg.Info(logg.WithField(gctx, "addr", cfg.App.AdminAddr), "admin server listening")
		if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info(ctx, "shutting down")
		shutdown(srv, adminSrv, cfg.App.ShutdownTimeout, logg)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		logg.Error(ctx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "server stopped")
}

func shutdown(srv *grpc.Server, adminSrv *http.Server, timeout time.Duration, logg *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := adminSrv.Shutdown(ctx); err != nil {
		logg.Error(ctx, "admin server shutdown", err)
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		srv.Stop()
	}
}

func pingSpanner(ctx context.Context, client *spanner.Client) error {
	iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()
	_, err := iter.Next()
	return err
}
