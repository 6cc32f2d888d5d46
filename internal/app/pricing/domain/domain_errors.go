package domain

import "errors"

// Domain errors as sentinel values
var (
	// Special price errors
	ErrInvalidSpecialPrice   = errors.New("special price must be lower than the product base price")
	ErrInvalidPrice          = errors.New("price must be positive")
	ErrPricePrecision        = errors.New("price cannot have more than two decimal places")
	ErrIDTooLong             = errors.New("identifier exceeds the maximum length")
	ErrInvalidValidityWindow = errors.New("validity window end must not precede its start")
	ErrEmptyUserID           = errors.New("user id cannot be empty")
	ErrEmptyClientID         = errors.New("client id cannot be empty")
	ErrEmptyProductID        = errors.New("product id cannot be empty")

	// Product errors
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrEmptyName        = errors.New("product name cannot be empty")
	ErrEmptySKU         = errors.New("product sku cannot be empty")
	ErrInvalidStock     = errors.New("product stock cannot be negative")
	ErrInvalidRating    = errors.New("product rating must be between 0 and 5")
	ErrTooManyProducts  = errors.New("too many products requested")

	// Storage errors
	ErrDuplicateRecord  = errors.New("a special price already exists for this user, client and product")
	ErrStoreUnavailable = errors.New("special price store unavailable")
)

// IsValidationError reports whether err is a client input error.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidSpecialPrice, ErrInvalidPrice, ErrPricePrecision, ErrInvalidValidityWindow,
		ErrIDTooLong,
		ErrEmptyUserID, ErrEmptyClientID, ErrEmptyProductID,
		ErrInvalidProductID, ErrEmptyName, ErrEmptySKU, ErrInvalidStock, ErrInvalidRating,
		ErrTooManyProducts,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
