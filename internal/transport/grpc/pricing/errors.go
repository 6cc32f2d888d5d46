package pricing

import (
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return status.Error(codes.NotFound, "product not found")

	case errors.Is(err, domain.ErrInvalidSpecialPrice):
		return status.Error(codes.InvalidArgument, "special price must be lower than the base price")

	case errors.Is(err, domain.ErrInvalidProductID):
		return status.Error(codes.InvalidArgument, "invalid product id")

	case errors.Is(err, domain.ErrInvalidPrice):
		return status.Error(codes.InvalidArgument, "price must be positive")

	case errors.Is(err, domain.ErrEmptyUserID):
		return status.Error(codes.InvalidArgument, "user_id is required")

	case errors.Is(err, domain.ErrEmptyClientID):
		return status.Error(codes.InvalidArgument, "client_id is required")

	case errors.Is(err, domain.ErrEmptyProductID):
		return status.Error(codes.InvalidArgument, "product_id is required")

	case domain.IsValidationError(err):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrDuplicateRecord):
		return status.Error(codes.AlreadyExists, "special price already exists")

	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Msg("store unavailable")
		return status.Error(codes.Unavailable, "store unavailable")

	default:
		log.Error().Err(err).Msg("unhandled error")
		return status.Error(codes.Internal, "internal server error")
	}
}
