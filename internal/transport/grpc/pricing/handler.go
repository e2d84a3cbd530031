package pricing

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/best_discounts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/best_value_products"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/find_substitutes"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/get_alert"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/list_alerts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/new_discounts"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/optimize_basket"
	"github.com/murkotick/price-comparator/internal/app/pricing/queries/price_history"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/check_alerts"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/create_alert"
	"github.com/murkotick/price-comparator/internal/app/pricing/usecases/delete_alert"
)

// Commands groups write interactors.
type Commands struct {
	CreateAlert *create_alert.Interactor
	DeleteAlert *delete_alert.Interactor
	CheckAlerts *check_alerts.Interactor
}

// Queries groups read handlers.
type Queries struct {
	OptimizeBasket *optimize_basket.Handler
	Substitutes    *find_substitutes.Handler
	BestValue      *best_value_products.Handler
	BestDiscounts  *best_discounts.Handler
	NewDiscounts   *new_discounts.Handler
	PriceHistory   *price_history.Handler
	GetAlert       *get_alert.Handler
	ListAlerts     *list_alerts.Handler
}

// Defaults fill request fields the caller left at zero.
type Defaults struct {
	SubstituteLimit    int
	BestDiscountsLimit int
}

// Handler is a thin gRPC transport adapter.
// It validates input, maps wire messages to application requests and delegates.
type Handler struct {
	commands Commands
	queries  Queries
	defaults Defaults
}

var _ PriceComparatorServer = (*Handler)(nil)

func NewHandler(cmd Commands, qry Queries, defaults Defaults) *Handler {
	return &Handler{commands: cmd, queries: qry, defaults: defaults}
}

func (h *Handler) OptimizeBasket(ctx context.Context, req *OptimizeBasketRequest) (*OptimizeBasketReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	asOf, err := parseDate("date", req.Date)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	plan, err := h.queries.OptimizeBasket.Execute(ctx, optimize_basket.Request{
		Lines: toBasketLines(req.Items),
		AsOf:  asOf,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toOptimizeBasketReply(plan), nil
}

func (h *Handler) FindSubstitutes(ctx context.Context, req *FindSubstitutesRequest) (*RecommendationsReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	limit := limitOr(req.Limit, h.defaults.SubstituteLimit)

	recs, err := h.queries.Substitutes.Execute(ctx, find_substitutes.Request{ProductID: req.ProductID, Limit: limit})
	if err != nil {
		return nil, mapError(err)
	}
	return &RecommendationsReply{Recommendations: toRecommendations(recs)}, nil
}

func (h *Handler) FindBestValueProducts(ctx context.Context, req *FindBestValueProductsRequest) (*RecommendationsReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	recs, err := h.queries.BestValue.Execute(ctx, best_value_products.Request{Category: req.Category})
	if err != nil {
		return nil, mapError(err)
	}
	return &RecommendationsReply{Recommendations: toRecommendations(recs)}, nil
}

func (h *Handler) GetBestDiscounts(ctx context.Context, req *GetBestDiscountsRequest) (*DiscountsReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	limit := limitOr(req.Limit, h.defaults.BestDiscountsLimit)

	rows, err := h.queries.BestDiscounts.Execute(ctx, best_discounts.Request{Date: date, Limit: limit})
	if err != nil {
		return nil, mapError(err)
	}
	return &DiscountsReply{Discounts: toDiscounts(rows)}, nil
}

func (h *Handler) GetNewDiscounts(ctx context.Context, req *GetNewDiscountsRequest) (*DiscountsReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	from, err := parseDate("from", req.From)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	rows, err := h.queries.NewDiscounts.Execute(ctx, new_discounts.Request{From: from, To: to})
	if err != nil {
		return nil, mapError(err)
	}
	return &DiscountsReply{Discounts: toDiscounts(rows)}, nil
}

func (h *Handler) GetProductPriceHistory(ctx context.Context, req *GetProductPriceHistoryRequest) (*GetProductPriceHistoryReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	q, err := historyRequest(req.StoreName, req.From, req.To)
	if err != nil {
		return nil, err
	}
	q.ProductID = req.ProductID

	hist, err := h.queries.PriceHistory.ForProduct(ctx, q)
	if err != nil {
		return nil, mapError(err)
	}
	return &GetProductPriceHistoryReply{History: toHistory(*hist)}, nil
}

func (h *Handler) GetCategoryPriceHistory(ctx context.Context, req *GetCategoryPriceHistoryRequest) (*PriceHistoriesReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	q, err := historyRequest(req.StoreName, req.From, req.To)
	if err != nil {
		return nil, err
	}
	q.Category = req.Category

	hs, err := h.queries.PriceHistory.ForCategory(ctx, q)
	if err != nil {
		return nil, mapError(err)
	}
	return &PriceHistoriesReply{Histories: toHistories(hs)}, nil
}

func (h *Handler) GetBrandPriceHistory(ctx context.Context, req *GetBrandPriceHistoryRequest) (*PriceHistoriesReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	q, err := historyRequest(req.StoreName, req.From, req.To)
	if err != nil {
		return nil, err
	}
	q.Brand = req.Brand

	hs, err := h.queries.PriceHistory.ForBrand(ctx, q)
	if err != nil {
		return nil, mapError(err)
	}
	return &PriceHistoriesReply{Histories: toHistories(hs)}, nil
}

func historyRequest(storeName, from, to string) (price_history.Request, error) {
	f, err := parseDate("from", from)
	if err != nil {
		return price_history.Request{}, status.Error(codes.InvalidArgument, err.Error())
	}
	t, err := parseDate("to", to)
	if err != nil {
		return price_history.Request{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return price_history.Request{StoreName: storeName, From: f, To: t}, nil
}

func (h *Handler) CreatePriceAlert(ctx context.Context, req *CreatePriceAlertRequest) (*PriceAlertReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	target, err := domain.NewMoneyFromString(req.TargetPrice)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "target_price: "+err.Error())
	}

	view, err := h.commands.CreateAlert.Execute(ctx, create_alert.Request{
		UserEmail:   req.UserEmail,
		ProductID:   req.ProductID,
		StoreName:   req.StoreName,
		TargetPrice: target,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &PriceAlertReply{Alert: toAlert(*view)}, nil
}

func (h *Handler) GetPriceAlert(ctx context.Context, req *GetPriceAlertRequest) (*PriceAlertReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	view, err := h.queries.GetAlert.Execute(ctx, get_alert.Request{AlertID: req.AlertID})
	if err != nil {
		return nil, mapError(err)
	}
	return &PriceAlertReply{Alert: toAlert(*view)}, nil
}

func (h *Handler) ListPriceAlerts(ctx context.Context, req *ListPriceAlertsRequest) (*PriceAlertsReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	views, err := h.queries.ListAlerts.Execute(ctx, list_alerts.Request{UserEmail: req.UserEmail})
	if err != nil {
		return nil, mapError(err)
	}
	return &PriceAlertsReply{Alerts: toAlerts(views)}, nil
}

func (h *Handler) DeletePriceAlert(ctx context.Context, req *DeletePriceAlertRequest) (*DeletePriceAlertReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := h.commands.DeleteAlert.Execute(ctx, delete_alert.Request{AlertID: req.AlertID}); err != nil {
		return nil, mapError(err)
	}
	return &DeletePriceAlertReply{}, nil
}

func (h *Handler) CheckPriceAlerts(ctx context.Context, req *CheckPriceAlertsRequest) (*CheckPriceAlertsReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	res, err := h.commands.CheckAlerts.Execute(ctx, check_alerts.Request{UserEmail: req.UserEmail})
	if err != nil {
		return nil, mapError(err)
	}
	return &CheckPriceAlertsReply{
		TotalAlerts:          res.TotalAlerts,
		TriggeredAlerts:      res.TriggeredAlerts,
		NewlyTriggeredAlerts: toAlerts(res.NewlyTriggeredAlerts),
	}, nil
}
