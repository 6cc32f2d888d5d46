package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// translateError maps Spanner failures onto domain errors. Unique index
// violations become ErrDuplicateRecord; everything else is reported as the
// store being unavailable, keeping the driver error in the chain.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if spanner.ErrCode(err) == codes.AlreadyExists {
		return fmt.Errorf("failed to %s: %w", op, domain.ErrDuplicateRecord)
	}
	return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
