package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/shopspring/decimal"
)

// SpecialPriceFilter selects special price records. Zero-valued fields do not
// constrain the result. ProductIDs restricts to a set when non-nil.
type SpecialPriceFilter struct {
	ID           string
	UserID       string
	ClientID     string
	ProductID    string
	ProductIDs   []string
	ApplicableAt *time.Time
}

// ByTriple builds the filter that addresses at most one record.
func ByTriple(t domain.Triple) SpecialPriceFilter {
	return SpecialPriceFilter{UserID: t.UserID, ClientID: t.ClientID, ProductID: t.ProductID}
}

// ByID builds a filter on the record identity.
func ByID(id string) SpecialPriceFilter {
	return SpecialPriceFilter{ID: id}
}

// Matches evaluates the filter against a record in memory.
func (f SpecialPriceFilter) Matches(sp *domain.SpecialPrice) bool {
	if f.ID != "" && sp.ID() != f.ID {
		return false
	}
	if f.UserID != "" && sp.UserID() != f.UserID {
		return false
	}
	if f.ClientID != "" && sp.ClientID() != f.ClientID {
		return false
	}
	if f.ProductID != "" && sp.ProductID() != f.ProductID {
		return false
	}
	if f.ProductIDs != nil && !contains(f.ProductIDs, sp.ProductID()) {
		return false
	}
	if f.ApplicableAt != nil && !sp.IsApplicableAt(*f.ApplicableAt) {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// SpecialPriceUpdate carries the fields an update overwrites. Nil fields are
// left untouched.
type SpecialPriceUpdate struct {
	SpecialPrice    *domain.Money
	DiscountPercent *decimal.Decimal
	Active          *bool
	UpdatedAt       time.Time
}

// UpdateFromChanges builds an update holding only the dirty fields of sp.
func UpdateFromChanges(sp *domain.SpecialPrice) SpecialPriceUpdate {
	changes := sp.Changes()
	update := SpecialPriceUpdate{UpdatedAt: sp.UpdatedAt()}

	if changes.Dirty(domain.FieldSpecialPrice) {
		price := sp.SpecialPrice()
		update.SpecialPrice = &price
	}
	if changes.Dirty(domain.FieldDiscountPercent) {
		discount := sp.DiscountPercent()
		update.DiscountPercent = &discount
	}
	if changes.Dirty(domain.FieldActive) {
		active := sp.Active()
		update.Active = &active
	}
	return update
}

// IsEmpty reports whether the update carries no field besides the timestamp.
func (u SpecialPriceUpdate) IsEmpty() bool {
	return u.SpecialPrice == nil && u.DiscountPercent == nil && u.Active == nil
}

// SpecialPriceCollection is the minimal document-collection contract the
// special price store runs on. Implementations must enforce a unique key on
// (user, client, product) and report violations as domain.ErrDuplicateRecord.
// Connectivity failures are reported wrapping domain.ErrStoreUnavailable.
type SpecialPriceCollection interface {
	// Find returns every record matching the filter, in no particular order.
	Find(ctx context.Context, filter SpecialPriceFilter) ([]*domain.SpecialPrice, error)

	// FindOne returns the first matching record, or nil when none matches.
	FindOne(ctx context.Context, filter SpecialPriceFilter) (*domain.SpecialPrice, error)

	// InsertOne persists a new record and returns its assigned identity.
	InsertOne(ctx context.Context, sp *domain.SpecialPrice) (string, error)

	// UpdateOne applies the update to the first matching record and returns
	// the number of records modified.
	UpdateOne(ctx context.Context, filter SpecialPriceFilter, update SpecialPriceUpdate) (int64, error)
}
