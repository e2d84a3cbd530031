package e2e

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instancepb "cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/check_alerts"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/create_alert"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/delete_alert"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	committer "github.com/murkotick/price-comparator/internal/pkg/committer"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
	"github.com/murkotick/price-comparator/internal/pkg/schema"
)

var (
	spClient *spanner.Client
	clk      *clock.FakeClock
	today    civil.Date

	catalog      *queries.SpannerCatalog
	alertReader  *queries.SpannerAlertReader
	outboxReader *repo.OutboxReader
	outboxRepo   *repo.OutboxRepo
	cm           *committer.Adapter
	logg         = logger.Nop()

	createUC *create_alert.Interactor
	deleteUC *delete_alert.Interactor
	checkUC  *check_alerts.Interactor

	lidl     = domain.Store{ID: "S1", Name: "lidl"}
	kaufland = domain.Store{ID: "S2", Name: "kaufland"}

	dbName string
)

func TestMain(m *testing.M) {
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		fmt.Println("SPANNER_EMULATOR_HOST not set, skipping e2e tests")
		os.Exit(0)
	}

	// Keep time in UTC everywhere.
	today = civil.DateOf(time.Now().UTC())
	clk = clock.NewFakeOn(today)

	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	projectID := env("SPANNER_PROJECT_ID", "test-project")
	instanceID := env("SPANNER_INSTANCE_ID", "emulator-instance")
	// Use a unique database per "go test" run to avoid id collisions.
	databaseID := fmt.Sprintf("e2e_%s", strings.ReplaceAll(uuid.New().String(), "-", "")[:20])

	parent := fmt.Sprintf("projects/%s", projectID)
	instName := fmt.Sprintf("%s/instances/%s", parent, instanceID)
	dbName = fmt.Sprintf("%s/databases/%s", instName, databaseID)

	instAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		panic(fmt.Sprintf("instance admin client: %v", err))
	}
	defer instAdmin.Close()

	dbAdmin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		panic(fmt.Sprintf("database admin client: %v", err))
	}
	defer dbAdmin.Close()

	ensureInstance(ctx, instAdmin, parent, instName, instanceID)

	stmts, err := schema.ReadStatements(filepath.Join("..", "..", schema.InitialSchema))
	if err != nil {
		panic(err.Error())
	}
	op, err := dbAdmin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instName,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
		ExtraStatements: stmts,
	})
	if err != nil {
		panic(fmt.Sprintf("CreateDatabase: %v", err))
	}
	if _, err := op.Wait(ctx); err != nil {
		panic(fmt.Sprintf("CreateDatabase wait: %v", err))
	}

	spClient, err = spanner.NewClient(ctx, dbName)
	if err != nil {
		panic(fmt.Sprintf("spanner.NewClient: %v", err))
	}

	// Wire dependencies.
	alertRepo := repo.NewAlertRepo()
	outboxRepo = repo.NewOutboxRepo()
	outboxReader = repo.NewOutboxReader(spClient)
	cm = committer.NewAdapter(spClient)
	catalog = queries.NewSpannerCatalog(spClient)
	alertReader = queries.NewSpannerAlertReader(spClient)

	createUC = create_alert.NewInteractor(alertRepo, outboxRepo, cm, alertReader, catalog, clk, "RON")
	deleteUC = delete_alert.NewInteractor(alertRepo, outboxRepo, cm, alertReader, clk)
	checkUC = check_alerts.NewInteractor(alertRepo, outboxRepo, cm, alertReader, catalog, clk, logg)

	if err := seedCatalog(ctx); err != nil {
		panic(fmt.Sprintf("seed catalog: %v", err))
	}

	code := m.Run()

	spClient.Close()

	// Best-effort cleanup (emulator only).
	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Minute)
	defer cancel2()
	_ = dbAdmin.DropDatabase(ctx2, &databasepb.DropDatabaseRequest{Database: dbName})

	os.Exit(code)
}

// seedCatalog loads two stores, two milk products, their prices and one discount.
func seedCatalog(ctx context.Context) error {
	cat := repo.NewCatalogRepo()
	plan := committer.NewPlan()
	plan.Add(cat.StoreMut(lidl), cat.StoreMut(kaufland))

	zuzu, err := domain.NewProduct("P1", "Lapte zuzu", "lactate", "Zuzu", num("1"), "l")
	if err != nil {
		return err
	}
	napolact, err := domain.NewProduct("P2", "Lapte napolact", "lactate", "Napolact", num("0.5"), "l")
	if err != nil {
		return err
	}
	plan.Add(cat.ProductMut(zuzu), cat.ProductMut(napolact))

	for _, p := range []struct {
		id, product string
		store       domain.Store
		amount      string
		date        civil.Date
	}{
		{"p0", "P1", lidl, "11.00", today.AddDays(-5)},
		{"p1", "P1", lidl, "9.90", today},
		{"p2", "P1", kaufland, "10.50", today},
		{"p3", "P2", lidl, "6.00", today},
	} {
		amount, err := domain.NewMoneyFromString(p.amount)
		if err != nil {
			return err
		}
		rec, err := domain.NewPriceRecord(p.id, p.product, p.store, amount, "RON", p.date)
		if err != nil {
			return err
		}
		plan.Add(cat.PriceMut(rec))
	}

	d, err := domain.NewDiscount("D1", "P2", lidl, num("20"), today, today.AddDays(3))
	if err != nil {
		return err
	}
	plan.Add(cat.DiscountMut(d))

	return cm.Apply(ctx, plan)
}

func ensureInstance(ctx context.Context, admin *instance.InstanceAdminClient, parent, instName, instanceID string) {
	_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instName})
	if err == nil {
		return
	}
	if status.Code(err) != codes.NotFound {
		panic(fmt.Sprintf("GetInstance: %v", err))
	}

	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     parent,
		InstanceId: instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("%s/instanceConfigs/emulator-config", parent),
			DisplayName: "E2E Test Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			panic(fmt.Sprintf("CreateInstance: %v", err))
		}
		return
	}
	if _, err := op.Wait(ctx); err != nil {
		panic(fmt.Sprintf("CreateInstance wait: %v", err))
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func num(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
