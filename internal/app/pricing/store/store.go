// Package store implements the special price record store on top of a
// document collection with a unique (user, client, product) key.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// DefaultCreatedBy is recorded on records created without an explicit author.
const DefaultCreatedBy = "system"

// UpsertRequest contains the input for Store.Upsert.
type UpsertRequest struct {
	Triple       domain.Triple
	SpecialPrice domain.Money
	BasePrice    domain.Money
	Snapshot     domain.ProductSnapshot
	Now          time.Time
}

// UpsertResult reports what Store.Upsert did.
type UpsertResult struct {
	Record     *domain.SpecialPrice
	WasCreated bool
	Modified   bool
}

// Store manages special price records.
type Store struct {
	collection contracts.SpecialPriceCollection
	policy     domain.ValidityPolicy
	createdBy  string
}

// NewStore creates a Store. A zero policy falls back to one calendar year.
func NewStore(collection contracts.SpecialPriceCollection, policy domain.ValidityPolicy, createdBy string) *Store {
	if policy.IsZero() {
		policy = domain.DefaultValidityPolicy
	}
	if createdBy == "" {
		createdBy = DefaultCreatedBy
	}
	return &Store{
		collection: collection,
		policy:     policy,
		createdBy:  createdBy,
	}
}

// Upsert creates the record for the triple or overwrites the price of the
// existing one. Validation happens before any storage access, so a rejected
// request writes nothing.
//
// When a concurrent insert for the same triple wins the race, the unique key
// surfaces ErrDuplicateRecord and the request is applied once more as an
// update of the winning record.
func (s *Store) Upsert(ctx context.Context, req *UpsertRequest) (*UpsertResult, error) {
	if err := req.Triple.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(req.SpecialPrice); err != nil {
		return nil, err
	}
	if _, err := domain.ComputeDiscount(req.BasePrice, req.SpecialPrice); err != nil {
		return nil, err
	}

	existing, err := s.collection.FindOne(ctx, contracts.ByTriple(req.Triple))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.update(ctx, existing, req)
	}

	record, err := domain.NewSpecialPrice(req.Triple, req.SpecialPrice, req.BasePrice, req.Snapshot, s.policy, s.createdBy, req.Now)
	if err != nil {
		return nil, err
	}

	id, err := s.collection.InsertOne(ctx, record)
	if errors.Is(err, domain.ErrDuplicateRecord) {
		winner, findErr := s.collection.FindOne(ctx, contracts.ByTriple(req.Triple))
		if findErr != nil {
			return nil, findErr
		}
		if winner == nil {
			return nil, err
		}
		return s.update(ctx, winner, req)
	}
	if err != nil {
		return nil, err
	}

	record.AssignID(id)
	record.Changes().Clear()

	return &UpsertResult{Record: record, WasCreated: true, Modified: true}, nil
}

func (s *Store) update(ctx context.Context, existing *domain.SpecialPrice, req *UpsertRequest) (*UpsertResult, error) {
	if err := existing.Reprice(req.SpecialPrice, req.BasePrice, req.Now); err != nil {
		return nil, err
	}

	modified, err := s.collection.UpdateOne(ctx, contracts.ByID(existing.ID()), contracts.UpdateFromChanges(existing))
	if err != nil {
		return nil, fmt.Errorf("failed to update special price %s: %w", existing.ID(), err)
	}
	existing.Changes().Clear()

	return &UpsertResult{Record: existing, WasCreated: false, Modified: modified > 0}, nil
}

// FindByUser returns the records of one user, or every record when userID is empty.
func (s *Store) FindByUser(ctx context.Context, userID string) ([]*domain.SpecialPrice, error) {
	return s.collection.Find(ctx, contracts.SpecialPriceFilter{UserID: userID})
}

// FindApplicable returns, keyed by product id, the record that applies to the
// user at now for each product in productIDs. All products are looked up in a
// single Find call.
//
// A user may hold records for the same product under several clients. The
// lowest special price wins, and the most recently updated record breaks ties.
func (s *Store) FindApplicable(ctx context.Context, userID string, productIDs []string, now time.Time) (map[string]*domain.SpecialPrice, error) {
	result := make(map[string]*domain.SpecialPrice)

	ids := uniqueIDs(productIDs)
	if userID == "" || len(ids) == 0 {
		return result, nil
	}

	records, err := s.collection.Find(ctx, contracts.SpecialPriceFilter{
		UserID:       userID,
		ProductIDs:   ids,
		ApplicableAt: &now,
	})
	if err != nil {
		return nil, err
	}

	for _, sp := range records {
		if sp.UserID() != userID || !sp.IsApplicableAt(now) {
			continue
		}
		current, ok := result[sp.ProductID()]
		if !ok || preferred(sp, current) {
			result[sp.ProductID()] = sp
		}
	}

	return result, nil
}

func preferred(candidate, current *domain.SpecialPrice) bool {
	if candidate.SpecialPrice().LessThan(current.SpecialPrice()) {
		return true
	}
	if candidate.SpecialPrice().Equals(current.SpecialPrice()) {
		return candidate.UpdatedAt().After(current.UpdatedAt())
	}
	return false
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
