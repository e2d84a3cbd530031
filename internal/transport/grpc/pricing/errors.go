package pricing

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/price-comparator/internal/app/pricing/domain"
)

// mapError translates domain errors into gRPC status codes.
// Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if errors.Is(err, spanner.ErrRowNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case domain.KindInvalidInput:
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.KindConflict:
		return status.Error(codes.AlreadyExists, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
