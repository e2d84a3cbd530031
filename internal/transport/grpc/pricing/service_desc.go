package pricing

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pricecomparator.v1.PriceComparator"

// PriceComparatorServer is the server API of the price comparator.
type PriceComparatorServer interface {
	OptimizeBasket(context.Context, *OptimizeBasketRequest) (*OptimizeBasketReply, error)
	FindSubstitutes(context.Context, *FindSubstitutesRequest) (*RecommendationsReply, error)
	FindBestValueProducts(context.Context, *FindBestValueProductsRequest) (*RecommendationsReply, error)
	GetBestDiscounts(context.Context, *GetBestDiscountsRequest) (*DiscountsReply, error)
	GetNewDiscounts(context.Context, *GetNewDiscountsRequest) (*DiscountsReply, error)
	GetProductPriceHistory(context.Context, *GetProductPriceHistoryRequest) (*GetProductPriceHistoryReply, error)
	GetCategoryPriceHistory(context.Context, *GetCategoryPriceHistoryRequest) (*PriceHistoriesReply, error)
	GetBrandPriceHistory(context.Context, *GetBrandPriceHistoryRequest) (*PriceHistoriesReply, error)
	CreatePriceAlert(context.Context, *CreatePriceAlertRequest) (*PriceAlertReply, error)
	GetPriceAlert(context.Context, *GetPriceAlertRequest) (*PriceAlertReply, error)
	ListPriceAlerts(context.Context, *ListPriceAlertsRequest) (*PriceAlertsReply, error)
	DeletePriceAlert(context.Context, *DeletePriceAlertRequest) (*DeletePriceAlertReply, error)
	CheckPriceAlerts(context.Context, *CheckPriceAlertsRequest) (*CheckPriceAlertsReply, error)
}

// ServiceDesc describes PriceComparator for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PriceComparatorServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("OptimizeBasket", PriceComparatorServer.OptimizeBasket),
		unary("FindSubstitutes", PriceComparatorServer.FindSubstitutes),
		unary("FindBestValueProducts", PriceComparatorServer.FindBestValueProducts),
		unary("GetBestDiscounts", PriceComparatorServer.GetBestDiscounts),
		unary("GetNewDiscounts", PriceComparatorServer.GetNewDiscounts),
		unary("GetProductPriceHistory", PriceComparatorServer.GetProductPriceHistory),
		unary("GetCategoryPriceHistory", PriceComparatorServer.GetCategoryPriceHistory),
		unary("GetBrandPriceHistory", PriceComparatorServer.GetBrandPriceHistory),
		unary("CreatePriceAlert", PriceComparatorServer.CreatePriceAlert),
		unary("GetPriceAlert", PriceComparatorServer.GetPriceAlert),
		unary("ListPriceAlerts", PriceComparatorServer.ListPriceAlerts),
		unary("DeletePriceAlert", PriceComparatorServer.DeletePriceAlert),
		unary("CheckPriceAlerts", PriceComparatorServer.CheckPriceAlerts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricecomparator/v1/price_comparator.proto",
}

// RegisterPriceComparatorServer registers srv on s.
func RegisterPriceComparatorServer(s grpc.ServiceRegistrar, srv PriceComparatorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary[Req, Resp any](method string, call func(PriceComparatorServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PriceComparatorServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PriceComparatorServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Client calls PriceComparator over a connection using the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OptimizeBasket(ctx context.Context, in *OptimizeBasketRequest, opts ...grpc.CallOption) (*OptimizeBasketReply, error) {
	return invoke[OptimizeBasketReply](ctx, c, "OptimizeBasket", in, opts)
}

func (c *Client) FindSubstitutes(ctx context.Context, in *FindSubstitutesRequest, opts ...grpc.CallOption) (*RecommendationsReply, error) {
	return invoke[RecommendationsReply](ctx, c, "FindSubstitutes", in, opts)
}

func (c *Client) FindBestValueProducts(ctx context.Context, in *FindBestValueProductsRequest, opts ...grpc.CallOption) (*RecommendationsReply, error) {
	return invoke[RecommendationsReply](ctx, c, "FindBestValueProducts", in, opts)
}

func (c *Client) GetBestDiscounts(ctx context.Context, in *GetBestDiscountsRequest, opts ...grpc.CallOption) (*DiscountsReply, error) {
	return invoke[DiscountsReply](ctx, c, "GetBestDiscounts", in, opts)
}

func (c *Client) GetNewDiscounts(ctx context.Context, in *GetNewDiscountsRequest, opts ...grpc.CallOption) (*DiscountsReply, error) {
	return invoke[DiscountsReply](ctx, c, "GetNewDiscounts", in, opts)
}

func (c *Client) GetProductPriceHistory(ctx context.Context, in *GetProductPriceHistoryRequest, opts ...grpc.CallOption) (*GetProductPriceHistoryReply, error) {
	return invoke[GetProductPriceHistoryReply](ctx, c, "GetProductPriceHistory", in, opts)
}

func (c *Client) GetCategoryPriceHistory(ctx context.Context, in *GetCategoryPriceHistoryRequest, opts ...grpc.CallOption) (*PriceHistoriesReply, error) {
	return invoke[PriceHistoriesReply](ctx, c, "GetCategoryPriceHistory", in, opts)
}

func (c *Client) GetBrandPriceHistory(ctx context.Context, in *GetBrandPriceHistoryRequest, opts ...grpc.CallOption) (*PriceHistoriesReply, error) {
	return invoke[PriceHistoriesReply](ctx, c, "GetBrandPriceHistory", in, opts)
}

func (c *Client) CreatePriceAlert(ctx context.Context, in *CreatePriceAlertRequest, opts ...grpc.CallOption) (*PriceAlertReply, error) {
	return invoke[PriceAlertReply](ctx, c, "CreatePriceAlert", in, opts)
}

func (c *Client) GetPriceAlert(ctx context.Context, in *GetPriceAlertRequest, opts ...grpc.CallOption) (*PriceAlertReply, error) {
	return invoke[PriceAlertReply](ctx, c, "GetPriceAlert", in, opts)
}

func (c *Client) ListPriceAlerts(ctx context.Context, in *ListPriceAlertsRequest, opts ...grpc.CallOption) (*PriceAlertsReply, error) {
	return invoke[PriceAlertsReply](ctx, c, "ListPriceAlerts", in, opts)
}

func (c *Client) DeletePriceAlert(ctx context.Context, in *DeletePriceAlertRequest, opts ...grpc.CallOption) (*DeletePriceAlertReply, error) {
	return invoke[DeletePriceAlertReply](ctx, c, "DeletePriceAlert", in, opts)
}

func (c *Client) CheckPriceAlerts(ctx context.Context, in *CheckPriceAlertsRequest, opts ...grpc.CallOption) (*CheckPriceAlertsReply, error) {
	return invoke[CheckPriceAlertsReply](ctx, c, "CheckPriceAlerts", in, opts)
}
