package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Field names for change tracking
const (
	FieldSpecialPrice    = "special_price"
	FieldDiscountPercent = "discount_percent"
	FieldActive          = "active"
	FieldUpdatedAt       = "updated_at"
)

// MaxIDLength is the longest user, client or product id accepted, in characters.
const MaxIDLength = 255

// Triple identifies at most one special price record.
type Triple struct {
	UserID    string
	ClientID  string
	ProductID string
}

// Validate checks that every part of the key is present.
func (t Triple) Validate() error {
	if strings.TrimSpace(t.UserID) == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(t.ClientID) == "" {
		return ErrEmptyClientID
	}
	if strings.TrimSpace(t.ProductID) == "" {
		return ErrEmptyProductID
	}
	for _, id := range []string{t.UserID, t.ClientID, t.ProductID} {
		if utf8.RuneCountInString(id) > MaxIDLength {
			return ErrIDTooLong
		}
	}
	return nil
}

// ProductSnapshot is the denormalized product data stored with a record.
type ProductSnapshot struct {
	Name      string
	Image     string
	BasePrice Money
}

// SpecialPrice is the aggregate root for a negotiated price override.
type SpecialPrice struct {
	id              string
	triple          Triple
	specialPrice    Money
	discountPercent decimal.Decimal
	window          ValidityWindow
	active          bool
	snapshot        ProductSnapshot
	createdBy       string
	createdAt       time.Time
	updatedAt       time.Time

	changes *ChangeTracker
}

// NewSpecialPrice creates a new record for the triple. The id is assigned by
// the store on insert.
func NewSpecialPrice(
	triple Triple,
	specialPrice, basePrice Money,
	snapshot ProductSnapshot,
	policy ValidityPolicy,
	createdBy string,
	now time.Time,
) (*SpecialPrice, error) {
	if err := triple.Validate(); err != nil {
		return nil, err
	}

	discount, err := ComputeDiscount(basePrice, specialPrice)
	if err != nil {
		return nil, err
	}

	if policy.IsZero() {
		policy = DefaultValidityPolicy
	}

	sp := &SpecialPrice{
		triple:          triple,
		specialPrice:    specialPrice,
		discountPercent: discount,
		window:          policy.WindowFrom(now),
		active:          true,
		snapshot:        snapshot,
		createdBy:       createdBy,
		createdAt:       now,
		updatedAt:       now,
		changes:         NewChangeTracker(),
	}

	sp.changes.MarkDirty(FieldSpecialPrice)
	sp.changes.MarkDirty(FieldDiscountPercent)
	sp.changes.MarkDirty(FieldActive)
	sp.changes.MarkDirty(FieldUpdatedAt)

	return sp, nil
}

// ReconstructSpecialPrice reconstitutes a record loaded from storage.
func ReconstructSpecialPrice(
	id string,
	triple Triple,
	specialPrice Money,
	discountPercent decimal.Decimal,
	validFrom, validUntil time.Time,
	active bool,
	snapshot ProductSnapshot,
	createdBy string,
	createdAt, updatedAt time.Time,
) *SpecialPrice {
	return &SpecialPrice{
		id:              id,
		triple:          triple,
		specialPrice:    specialPrice,
		discountPercent: discountPercent,
		window:          ValidityWindow{from: validFrom, until: validUntil},
		active:          active,
		snapshot:        snapshot,
		createdBy:       createdBy,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		changes:         NewChangeTracker(),
	}
}

// Getters
func (sp *SpecialPrice) ID() string                       { return sp.id }
func (sp *SpecialPrice) Triple() Triple                   { return sp.triple }
func (sp *SpecialPrice) UserID() string                   { return sp.triple.UserID }
func (sp *SpecialPrice) ClientID() string                 { return sp.triple.ClientID }
func (sp *SpecialPrice) ProductID() string                { return sp.triple.ProductID }
func (sp *SpecialPrice) SpecialPrice() Money              { return sp.specialPrice }
func (sp *SpecialPrice) DiscountPercent() decimal.Decimal { return sp.discountPercent }
func (sp *SpecialPrice) Window() ValidityWindow           { return sp.window }
func (sp *SpecialPrice) ValidFrom() time.Time             { return sp.window.from }
func (sp *SpecialPrice) ValidUntil() time.Time            { return sp.window.until }
func (sp *SpecialPrice) Active() bool                     { return sp.active }
func (sp *SpecialPrice) Snapshot() ProductSnapshot        { return sp.snapshot }
func (sp *SpecialPrice) CreatedBy() string                { return sp.createdBy }
func (sp *SpecialPrice) CreatedAt() time.Time             { return sp.createdAt }
func (sp *SpecialPrice) UpdatedAt() time.Time             { return sp.updatedAt }
func (sp *SpecialPrice) Changes() *ChangeTracker          { return sp.changes }

// AssignID sets the identity given by storage on insert.
func (sp *SpecialPrice) AssignID(id string) {
	sp.id = id
}

// Reprice overwrites the price of an existing record and reactivates it.
// The validity window is left unchanged.
func (sp *SpecialPrice) Reprice(specialPrice, basePrice Money, now time.Time) error {
	discount, err := ComputeDiscount(basePrice, specialPrice)
	if err != nil {
		return err
	}

	sp.specialPrice = specialPrice
	sp.discountPercent = discount
	sp.active = true
	sp.updatedAt = now

	sp.changes.MarkDirty(FieldSpecialPrice)
	sp.changes.MarkDirty(FieldDiscountPercent)
	sp.changes.MarkDirty(FieldActive)
	sp.changes.MarkDirty(FieldUpdatedAt)

	return nil
}

// Deactivate switches the record off without touching its window.
func (sp *SpecialPrice) Deactivate(now time.Time) {
	if !sp.active {
		return
	}
	sp.active = false
	sp.updatedAt = now
	sp.changes.MarkDirty(FieldActive)
	sp.changes.MarkDirty(FieldUpdatedAt)
}

// IsApplicableAt reports whether the record is active and its window contains t.
func (sp *SpecialPrice) IsApplicableAt(t time.Time) bool {
	return sp.active && sp.window.Contains(t)
}
