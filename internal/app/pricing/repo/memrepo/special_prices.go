// Package memrepo provides in-memory implementations of the pricing
// persistence contracts for tests and local development.
package memrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

type specialPriceRow struct {
	id              string
	triple          domain.Triple
	specialPrice    domain.Money
	discountPercent decimal.Decimal
	validFrom       time.Time
	validUntil      time.Time
	active          bool
	snapshot        domain.ProductSnapshot
	createdBy       string
	createdAt       time.Time
	updatedAt       time.Time
}

func toRow(id string, sp *domain.SpecialPrice) specialPriceRow {
	return specialPriceRow{
		id:              id,
		triple:          sp.Triple(),
		specialPrice:    sp.SpecialPrice(),
		discountPercent: sp.DiscountPercent(),
		validFrom:       sp.ValidFrom(),
		validUntil:      sp.ValidUntil(),
		active:          sp.Active(),
		snapshot:        sp.Snapshot(),
		createdBy:       sp.CreatedBy(),
		createdAt:       sp.CreatedAt(),
		updatedAt:       sp.UpdatedAt(),
	}
}

func (r specialPriceRow) toDomain() *domain.SpecialPrice {
	return domain.ReconstructSpecialPrice(
		r.id, r.triple, r.specialPrice, r.discountPercent,
		r.validFrom, r.validUntil, r.active, r.snapshot,
		r.createdBy, r.createdAt, r.updatedAt,
	)
}

// SpecialPriceCollection is a concurrency-safe in-memory special price collection.
// Records are copied in and out, so callers never share state with the collection.
type SpecialPriceCollection struct {
	mu    sync.RWMutex
	rows  map[string]specialPriceRow
	order []string
	keys  map[domain.Triple]string
}

// NewSpecialPriceCollection creates an empty collection.
func NewSpecialPriceCollection() *SpecialPriceCollection {
	return &SpecialPriceCollection{
		rows: make(map[string]specialPriceRow),
		keys: make(map[domain.Triple]string),
	}
}

// Find returns matching records in insertion order.
func (c *SpecialPriceCollection) Find(ctx context.Context, filter contracts.SpecialPriceFilter) ([]*domain.SpecialPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*domain.SpecialPrice, 0)
	for _, id := range c.order {
		sp := c.rows[id].toDomain()
		if filter.Matches(sp) {
			result = append(result, sp)
		}
	}
	return result, nil
}

// FindOne returns the first matching record or nil.
func (c *SpecialPriceCollection) FindOne(ctx context.Context, filter contracts.SpecialPriceFilter) (*domain.SpecialPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if filter.ID == "" && filter.UserID != "" && filter.ClientID != "" && filter.ProductID != "" {
		id, ok := c.keys[domain.Triple{UserID: filter.UserID, ClientID: filter.ClientID, ProductID: filter.ProductID}]
		if !ok {
			return nil, nil
		}
		sp := c.rows[id].toDomain()
		if !filter.Matches(sp) {
			return nil, nil
		}
		return sp, nil
	}

	for _, id := range c.order {
		sp := c.rows[id].toDomain()
		if filter.Matches(sp) {
			return sp, nil
		}
	}
	return nil, nil
}

// InsertOne stores a copy of sp, enforcing the unique triple.
func (c *SpecialPriceCollection) InsertOne(ctx context.Context, sp *domain.SpecialPrice) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.keys[sp.Triple()]; exists {
		return "", domain.ErrDuplicateRecord
	}

	id := sp.ID()
	if id == "" {
		id = uuid.New().String()
	}
	if _, exists := c.rows[id]; exists {
		return "", domain.ErrDuplicateRecord
	}

	c.rows[id] = toRow(id, sp)
	c.keys[sp.Triple()] = id
	c.order = append(c.order, id)
	return id, nil
}

// UpdateOne applies update to the first matching record.
func (c *SpecialPriceCollection) UpdateOne(ctx context.Context, filter contracts.SpecialPriceFilter, update contracts.SpecialPriceUpdate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range c.order {
		row := c.rows[id]
		if !filter.Matches(row.toDomain()) {
			continue
		}
		if update.SpecialPrice != nil {
			row.specialPrice = *update.SpecialPrice
		}
		if update.DiscountPercent != nil {
			row.discountPercent = *update.DiscountPercent
		}
		if update.Active != nil {
			row.active = *update.Active
		}
		if !update.UpdatedAt.IsZero() {
			row.updatedAt = update.UpdatedAt
		}
		c.rows[id] = row
		return 1, nil
	}
	return 0, nil
}

// Len returns the number of stored records.
func (c *SpecialPriceCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}
