package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/murkotick/price-comparator/internal/pkg/logger"
)

// RequestIDHeader is the metadata key carrying the caller's request id.
const RequestIDHeader = "x-request-id"

// LoggingInterceptor attaches a request id to the context logger and logs
// the outcome of every call.
func LoggingInterceptor(logg *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		ctx = logg.WithRequestID(ctx, requestID(ctx))

		resp, err := handler(ctx, req)

		ctx = logg.WithFields(ctx, map[string]any{
			"method":      info.FullMethod,
			"code":        status.Code(err).String(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if err != nil {
			logg.Error(ctx, "rpc failed", err)
		} else {
			logg.Debug(ctx, "rpc served")
		}
		return resp, err
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(RequestIDHeader); len(vals) > 0 && vals[0] != "" {
			return vals[0]
		}
	}
	return uuid.NewString()
}
