package pricing

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/pricingtest"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/best_discounts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/best_value_products"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/find_substitutes"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/get_alert"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/list_alerts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/new_discounts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/optimize_basket"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/price_history"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo"
	"github.com/murkotick/price-comparator/internal/app/pricing/repo/memory"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/check_alerts"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/create_alert"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/delete_alert"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	"github.com/murkotick/price-comparator/internal/pkg/committer"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

var (
	lidl     = domain.Store{ID: "S1", Name: "lidl"}
	kaufland = domain.Store{ID: "S2", Name: "kaufland"}
	today    = pricingtest.Day(2025, 5, 8)
)

type recordingCommitter struct {
	plans []*committer.Plan
}

func (c *recordingCommitter) Apply(_ context.Context, plan *committer.Plan) error {
	c.plans = append(c.plans, plan)
	return nil
}

func newTestClient(t *testing.T) (*Client, *recordingCommitter) {
	t.Helper()
	return newTestClientWith(t, Defaults{SubstituteLimit: 5, BestDiscountsLimit: 10}, nil)
}

func newTestClientWith(t *testing.T, defaults Defaults, seed func(*memory.Catalog)) (*Client, *recordingCommitter) {
	t.Helper()

	catalog := memory.NewCatalog().
		AddStores(lidl, kaufland).
		AddProducts(
			pricingtest.Product(t, "P1", "Lapte zuzu", "lactate", "Zuzu", "1", "l"),
			pricingtest.Product(t, "P2", "Lapte napolact", "lactate", "Napolact", "0.5", "l"),
		).
		AddPrices(
			pricingtest.Price(t, "p1", "P1", lidl, "9.90", today),
			pricingtest.Price(t, "p2", "P1", kaufland, "10.50", today),
			pricingtest.Price(t, "p3", "P2", lidl, "6.00", today),
		).
		AddDiscounts(pricingtest.Discount(t, "D1", "P2", lidl, "20", today, today.AddDays(3)))
	if seed != nil {
		seed(catalog)
	}
	alerts := memory.NewAlerts().Add(
		pricingtest.Alert(t, "A1", "ana@example.com", "P1", nil, "9.00", domain.AlertStatusActive, today.AddDays(-2)),
	)

	clk := clock.NewFakeOn(today)
	logg := logger.Nop()
	c := &recordingCommitter{}
	alertRepo, outboxRepo := repo.NewAlertRepo(), repo.NewOutboxRepo()

	h := NewHandler(
		Commands{
			CreateAlert: create_alert.NewInteractor(alertRepo, outboxRepo, c, alerts, catalog, clk, "RON"),
			DeleteAlert: delete_alert.NewInteractor(alertRepo, outboxRepo, c, alerts, clk),
			CheckAlerts: check_alerts.NewInteractor(alertRepo, outboxRepo, c, alerts, catalog, clk, logg),
		},
		Queries{
			OptimizeBasket: optimize_basket.NewHandler(catalog, clk, logg),
			Substitutes:    find_substitutes.NewHandler(catalog, clk, logg),
			BestValue:      best_value_products.NewHandler(catalog, clk),
			BestDiscounts:  best_discounts.NewHandler(catalog, clk, logg),
			NewDiscounts:   new_discounts.NewHandler(catalog, clk, logg),
			PriceHistory:   price_history.NewHandler(catalog, clk, 30),
			GetAlert:       get_alert.NewHandler(alerts, catalog, clk),
			ListAlerts:     list_alerts.NewHandler(alerts, catalog, clk),
		},
		defaults,
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(logg)))
	RegisterPriceComparatorServer(srv, h)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn), c
}

func TestOptimizeBasket(t *testing.T) {
	client, _ := newTestClient(t)

	reply, err := client.OptimizeBasket(context.Background(), &OptimizeBasketRequest{
		Items: []BasketItem{{ProductID: "P1", Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, reply.StoreLists, 1)
	assert.Equal(t, "lidl", reply.StoreLists[0].StoreName)
	assert.Equal(t, "19.80", reply.TotalCost)
	assert.Equal(t, "21.00", reply.WorstCaseCost)
	assert.Equal(t, "1.20", reply.TotalSavings)
	assert.Equal(t, "RON", reply.Currency)
}

func TestOptimizeBasket_InvalidInput(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.OptimizeBasket(ctx, &OptimizeBasketRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.OptimizeBasket(ctx, &OptimizeBasketRequest{Items: []BasketItem{{ProductID: "P1", Quantity: 0}}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.OptimizeBasket(ctx, &OptimizeBasketRequest{Items: []BasketItem{{ProductID: "P1", Quantity: 1}}, Date: "08/05/2025"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.OptimizeBasket(ctx, &OptimizeBasketRequest{Items: []BasketItem{{ProductID: "NOPE", Quantity: 1}}})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestFindSubstitutes(t *testing.T) {
	client, _ := newTestClient(t)

	reply, err := client.FindSubstitutes(context.Background(), &FindSubstitutesRequest{ProductID: "P1"})
	require.NoError(t, err)

	require.Len(t, reply.Recommendations, 1)
	rec := reply.Recommendations[0]
	assert.Equal(t, "P2", rec.ProductID)
	assert.Equal(t, "6.00", rec.Price)
	assert.Equal(t, "12.0000", rec.ValuePerUnit)
	assert.True(t, rec.OnDiscount)
	require.NotNil(t, rec.DiscountedPrice)
	assert.Equal(t, "4.80", *rec.DiscountedPrice)

	_, err = client.FindSubstitutes(context.Background(), &FindSubstitutesRequest{ProductID: "NOPE"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func intPtr(v int) *int { return &v }

func withSecondMilk(t *testing.T) func(*memory.Catalog) {
	return func(c *memory.Catalog) {
		c.AddProducts(pricingtest.Product(t, "P3", "Lapte fulga", "lactate", "Fulga", "1", "l")).
			AddPrices(pricingtest.Price(t, "p4", "P3", lidl, "8.00", today)).
			AddDiscounts(pricingtest.Discount(t, "D2", "P1", kaufland, "10", today, today))
	}
}

func TestFindSubstitutes_Limit(t *testing.T) {
	client, _ := newTestClientWith(t, Defaults{SubstituteLimit: 1, BestDiscountsLimit: 1}, withSecondMilk(t))
	ctx := context.Background()

	reply, err := client.FindSubstitutes(ctx, &FindSubstitutesRequest{ProductID: "P1"})
	require.NoError(t, err)
	assert.Len(t, reply.Recommendations, 1)

	for _, limit := range []int{0, -1} {
		reply, err = client.FindSubstitutes(ctx, &FindSubstitutesRequest{ProductID: "P1", Limit: intPtr(limit)})
		require.NoError(t, err)
		assert.Len(t, reply.Recommendations, 2, "limit %d", limit)
	}

	reply, err = client.FindSubstitutes(ctx, &FindSubstitutesRequest{ProductID: "P1", Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Len(t, reply.Recommendations, 2)
}

func TestGetBestDiscounts_Limit(t *testing.T) {
	client, _ := newTestClientWith(t, Defaults{SubstituteLimit: 1, BestDiscountsLimit: 1}, withSecondMilk(t))
	ctx := context.Background()

	reply, err := client.GetBestDiscounts(ctx, &GetBestDiscountsRequest{})
	require.NoError(t, err)
	require.Len(t, reply.Discounts, 1)
	assert.Equal(t, "P2", reply.Discounts[0].ProductID)

	reply, err = client.GetBestDiscounts(ctx, &GetBestDiscountsRequest{Limit: intPtr(-1)})
	require.NoError(t, err)
	assert.Len(t, reply.Discounts, 2)
}

func TestGetBestDiscounts(t *testing.T) {
	client, _ := newTestClient(t)

	reply, err := client.GetBestDiscounts(context.Background(), &GetBestDiscountsRequest{})
	require.NoError(t, err)

	require.Len(t, reply.Discounts, 1)
	d := reply.Discounts[0]
	assert.Equal(t, "P2", d.ProductID)
	assert.Equal(t, "20", d.PercentageOfDiscount)
	assert.Equal(t, "4.80", d.DiscountedPrice)
	assert.Equal(t, "2025-05-08", d.StartDate)
}

func TestGetNewDiscounts_InvertedRange(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetNewDiscounts(context.Background(), &GetNewDiscountsRequest{From: "2025-05-09", To: "2025-05-01"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetProductPriceHistory(t *testing.T) {
	client, _ := newTestClient(t)

	reply, err := client.GetProductPriceHistory(context.Background(), &GetProductPriceHistoryRequest{ProductID: "P1"})
	require.NoError(t, err)

	require.Len(t, reply.History.PriceHistory, 1)
	point := reply.History.PriceHistory[0]
	assert.Equal(t, "2025-05-08", point.Date)
	assert.Equal(t, "lidl", point.StoreName)
	assert.Equal(t, "9.90", point.Price)

	_, err = client.GetProductPriceHistory(context.Background(), &GetProductPriceHistoryRequest{ProductID: "P1", StoreName: "mega"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCreatePriceAlert(t *testing.T) {
	client, c := newTestClient(t)

	reply, err := client.CreatePriceAlert(context.Background(), &CreatePriceAlertRequest{
		UserEmail:   "bob@example.com",
		ProductID:   "P1",
		StoreName:   "lidl",
		TargetPrice: "10.00",
	})
	require.NoError(t, err)

	assert.Equal(t, "bob@example.com", reply.Alert.UserEmail)
	assert.Equal(t, "10.00", reply.Alert.TargetPrice)
	assert.True(t, reply.Alert.IsTriggered)
	require.NotNil(t, reply.Alert.CurrentBestPrice)
	assert.Equal(t, "9.90", *reply.Alert.CurrentBestPrice)
	assert.Len(t, c.plans, 1)

	_, err = client.CreatePriceAlert(context.Background(), &CreatePriceAlertRequest{
		UserEmail:   "not-an-email",
		ProductID:   "P1",
		TargetPrice: "10.00",
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreatePriceAlert_AlreadyExists(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.CreatePriceAlert(context.Background(), &CreatePriceAlertRequest{
		UserEmail:   "ana@example.com",
		ProductID:   "P1",
		TargetPrice: "8.00",
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestAlertQueries(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	got, err := client.GetPriceAlert(ctx, &GetPriceAlertRequest{AlertID: "A1"})
	require.NoError(t, err)
	assert.Equal(t, "Lapte zuzu", got.Alert.ProductName)
	assert.Equal(t, "active", got.Alert.Status)

	_, err = client.GetPriceAlert(ctx, &GetPriceAlertRequest{AlertID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	list, err := client.ListPriceAlerts(ctx, &ListPriceAlertsRequest{UserEmail: "ANA@example.com"})
	require.NoError(t, err)
	require.Len(t, list.Alerts, 1)
	assert.Equal(t, "A1", list.Alerts[0].ID)

	_, err = client.DeletePriceAlert(ctx, &DeletePriceAlertRequest{AlertID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCheckPriceAlerts(t *testing.T) {
	client, c := newTestClient(t)

	reply, err := client.CheckPriceAlerts(context.Background(), &CheckPriceAlertsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, reply.TotalAlerts)
	assert.Equal(t, 0, reply.TriggeredAlerts)
	assert.Empty(t, reply.NewlyTriggeredAlerts)
	assert.Len(t, c.plans, 1)
}
