package mongorepo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to %s: %w", op, domain.ErrDuplicateRecord)
	}
	if errors.Is(err, domain.ErrInvalidProductID) {
		return err
	}
	return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
