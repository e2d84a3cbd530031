package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks struct tags and reports the first failing field
// as InvalidArgument.
func validateRequest(req any) error {
	if req == nil {
		return status.Error(codes.InvalidArgument, "request is required")
	}
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return status.Error(codes.InvalidArgument, fmt.Sprintf("%s: failed %q", fieldPath(fe.Namespace()), fe.Tag()))
	}
	return status.Error(codes.InvalidArgument, err.Error())
}

// fieldPath drops the struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
