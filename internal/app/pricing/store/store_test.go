package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/repo/memrepo"
)

var (
	now       = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	basePrice = domain.MustMoney("1299.99")
	triple    = domain.Triple{UserID: "U1", ClientID: "C1", ProductID: "P1"}
)

func newRequest(price string, at time.Time) *UpsertRequest {
	return &UpsertRequest{
		Triple:       triple,
		SpecialPrice: domain.MustMoney(price),
		BasePrice:    basePrice,
		Snapshot:     domain.ProductSnapshot{Name: "iPhone 15 Pro Max", BasePrice: basePrice},
		Now:          at,
	}
}

func TestStore_UpsertCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	coll := memrepo.NewSpecialPriceCollection()
	s := NewStore(coll, domain.DefaultValidityPolicy, "admin")

	created, err := s.Upsert(ctx, newRequest("950.00", now))
	require.NoError(t, err)
	assert.True(t, created.WasCreated)
	assert.NotEmpty(t, created.Record.ID())
	assert.Equal(t, "26.9", created.Record.DiscountPercent().StringFixed(1))
	assert.Equal(t, created.Record.ValidFrom().AddDate(1, 0, 0), created.Record.ValidUntil())
	assert.Equal(t, "admin", created.Record.CreatedBy())

	later := now.Add(24 * time.Hour)
	updated, err := s.Upsert(ctx, newRequest("900.00", later))
	require.NoError(t, err)
	assert.False(t, updated.WasCreated)
	assert.True(t, updated.Modified)
	assert.Equal(t, created.Record.ID(), updated.Record.ID())
	assert.Equal(t, "30.8", updated.Record.DiscountPercent().StringFixed(1))

	records, err := s.FindByUser(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "900.00", records[0].SpecialPrice().String())
	assert.Equal(t, later, records[0].UpdatedAt())
	assert.Equal(t, now, records[0].ValidFrom(), "window kept on update")
	assert.Equal(t, now.AddDate(1, 0, 0), records[0].ValidUntil())
}

func TestStore_UpsertReactivatesInactiveRecord(t *testing.T) {
	ctx := context.Background()
	coll := memrepo.NewSpecialPriceCollection()
	s := NewStore(coll, domain.ValidityPolicy{}, "")

	first, err := s.Upsert(ctx, newRequest("950.00", now))
	require.NoError(t, err)

	inactive := false
	_, err = coll.UpdateOne(ctx, contracts.ByID(first.Record.ID()), contracts.SpecialPriceUpdate{Active: &inactive})
	require.NoError(t, err)

	again, err := s.Upsert(ctx, newRequest("940.00", now.Add(time.Hour)))
	require.NoError(t, err)
	assert.True(t, again.Record.Active())

	got, err := coll.FindOne(ctx, contracts.ByTriple(triple))
	require.NoError(t, err)
	assert.True(t, got.Active())
	assert.Equal(t, DefaultCreatedBy, got.CreatedBy())
}

func TestStore_UpsertRejectsWithoutWriting(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		price   string
		wantErr error
	}{
		{"equal to base", "1299.99", domain.ErrInvalidSpecialPrice},
		{"above base", "1500", domain.ErrInvalidSpecialPrice},
		{"zero", "0", domain.ErrInvalidPrice},
		{"sub-cent below base", "1299.989", domain.ErrPricePrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := memrepo.NewSpecialPriceCollection()
			s := NewStore(coll, domain.DefaultValidityPolicy, "system")

			_, err := s.Upsert(ctx, newRequest(tt.price, now))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, coll.Len())
		})
	}

	t.Run("rejected update leaves record untouched", func(t *testing.T) {
		coll := memrepo.NewSpecialPriceCollection()
		s := NewStore(coll, domain.DefaultValidityPolicy, "system")
		_, err := s.Upsert(ctx, newRequest("950.00", now))
		require.NoError(t, err)

		_, err = s.Upsert(ctx, newRequest("2000", now.Add(time.Hour)))
		assert.ErrorIs(t, err, domain.ErrInvalidSpecialPrice)

		got, err := coll.FindOne(ctx, contracts.ByTriple(triple))
		require.NoError(t, err)
		assert.Equal(t, "950.00", got.SpecialPrice().String())
		assert.Equal(t, now, got.UpdatedAt())
	})

	t.Run("missing client id", func(t *testing.T) {
		coll := memrepo.NewSpecialPriceCollection()
		s := NewStore(coll, domain.DefaultValidityPolicy, "system")
		req := newRequest("950.00", now)
		req.Triple.ClientID = ""

		_, err := s.Upsert(ctx, req)
		assert.ErrorIs(t, err, domain.ErrEmptyClientID)
		assert.Equal(t, 0, coll.Len())
	})
}

// racingCollection hides existing records from the first FindOne so the
// store takes the insert path and hits the unique key.
type racingCollection struct {
	*memrepo.SpecialPriceCollection
	mu     sync.Mutex
	hidden bool
}

func (r *racingCollection) FindOne(ctx context.Context, f contracts.SpecialPriceFilter) (*domain.SpecialPrice, error) {
	r.mu.Lock()
	hide := !r.hidden
	r.hidden = true
	r.mu.Unlock()
	if hide {
		return nil, nil
	}
	return r.SpecialPriceCollection.FindOne(ctx, f)
}

func TestStore_UpsertRetriesDuplicateAsUpdate(t *testing.T) {
	ctx := context.Background()
	inner := memrepo.NewSpecialPriceCollection()
	seed := NewStore(inner, domain.DefaultValidityPolicy, "system")
	first, err := seed.Upsert(ctx, newRequest("950.00", now))
	require.NoError(t, err)

	s := NewStore(&racingCollection{SpecialPriceCollection: inner}, domain.DefaultValidityPolicy, "system")
	res, err := s.Upsert(ctx, newRequest("900.00", now.Add(time.Minute)))
	require.NoError(t, err)
	assert.False(t, res.WasCreated)
	assert.Equal(t, first.Record.ID(), res.Record.ID())
	assert.Equal(t, 1, inner.Len())

	got, err := inner.FindOne(ctx, contracts.ByTriple(triple))
	require.NoError(t, err)
	assert.Equal(t, "900.00", got.SpecialPrice().String())
}

func TestStore_ConcurrentUpsertsKeepOneRecord(t *testing.T) {
	ctx := context.Background()
	coll := memrepo.NewSpecialPriceCollection()
	s := NewStore(coll, domain.DefaultValidityPolicy, "system")

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Upsert(ctx, newRequest(fmt.Sprintf("%d.00", 900+i), now.Add(time.Duration(i)*time.Second)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, coll.Len())
}

func TestStore_FindByUser(t *testing.T) {
	ctx := context.Background()
	coll := memrepo.NewSpecialPriceCollection()
	s := NewStore(coll, domain.DefaultValidityPolicy, "system")

	for _, tr := range []domain.Triple{
		{UserID: "U1", ClientID: "C1", ProductID: "P1"},
		{UserID: "U1", ClientID: "C1", ProductID: "P2"},
		{UserID: "U2", ClientID: "C9", ProductID: "P1"},
	} {
		req := newRequest("999", now)
		req.Triple = tr
		_, err := s.Upsert(ctx, req)
		require.NoError(t, err)
	}

	u1, err := s.FindByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, u1, 2)

	all, err := s.FindByUser(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := s.FindByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_FindApplicable(t *testing.T) {
	ctx := context.Background()
	coll := memrepo.NewSpecialPriceCollection()
	s := NewStore(coll, domain.DefaultValidityPolicy, "system")

	insert := func(productID string, from, until time.Time, active bool) {
		sp := domain.ReconstructSpecialPrice("", domain.Triple{UserID: "U1", ClientID: "C1", ProductID: productID},
			domain.MustMoney("85"), domain.MustMoney("15").Decimal(), from, until, active,
			domain.ProductSnapshot{}, "system", from, from)
		_, err := coll.InsertOne(ctx, sp)
		require.NoError(t, err)
	}

	insert("current", now.Add(-time.Hour), now.Add(time.Hour), true)
	insert("future", now.Add(time.Hour), now.AddDate(1, 0, 0), true)
	insert("expired", now.AddDate(-1, 0, 0), now.Add(-time.Second), true)
	insert("inactive", now.Add(-time.Hour), now.Add(time.Hour), false)
	insert("edge", now, now, true)

	got, err := s.FindApplicable(ctx, "U1", []string{"current", "future", "expired", "inactive", "edge", "missing"}, now)
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Contains(t, got, "current")
	assert.Contains(t, got, "edge")

	other, err := s.FindApplicable(ctx, "U2", []string{"current"}, now)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStore_FindApplicable_LowestPriceAcrossClients(t *testing.T) {
	ctx := context.Background()
	coll := memrepo.NewSpecialPriceCollection()
	s := NewStore(coll, domain.DefaultValidityPolicy, "system")

	for client, price := range map[string]string{"C1": "950", "C2": "900", "C3": "1000"} {
		req := newRequest(price, now)
		req.Triple.ClientID = client
		_, err := s.Upsert(ctx, req)
		require.NoError(t, err)
	}

	got, err := s.FindApplicable(ctx, "U1", []string{"P1"}, now.Add(time.Minute))
	require.NoError(t, err)
	require.Contains(t, got, "P1")
	assert.Equal(t, "C2", got["P1"].ClientID())
}

// countingCollection records Find calls.
type countingCollection struct {
	*memrepo.SpecialPriceCollection
	finds   int
	filters []contracts.SpecialPriceFilter
}

func (c *countingCollection) Find(ctx context.Context, f contracts.SpecialPriceFilter) ([]*domain.SpecialPrice, error) {
	c.finds++
	c.filters = append(c.filters, f)
	return c.SpecialPriceCollection.Find(ctx, f)
}

func TestStore_FindApplicable_SingleBatchedLookup(t *testing.T) {
	ctx := context.Background()
	coll := &countingCollection{SpecialPriceCollection: memrepo.NewSpecialPriceCollection()}
	s := NewStore(coll, domain.DefaultValidityPolicy, "system")

	_, err := s.FindApplicable(ctx, "U1", []string{"P1", "P2", "P1", "P3", ""}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, coll.finds)
	assert.Equal(t, []string{"P1", "P2", "P3"}, coll.filters[0].ProductIDs)

	t.Run("no products means no query", func(t *testing.T) {
		got, err := s.FindApplicable(ctx, "U1", nil, now)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 1, coll.finds)
	})

	t.Run("no user means no query", func(t *testing.T) {
		got, err := s.FindApplicable(ctx, "", []string{"P1"}, now)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 1, coll.finds)
	})
}

type unavailableCollection struct{}

var errDown = fmt.Errorf("dial tcp: connection refused: %w", domain.ErrStoreUnavailable)

func (unavailableCollection) Find(context.Context, contracts.SpecialPriceFilter) ([]*domain.SpecialPrice, error) {
	return nil, errDown
}

func (unavailableCollection) FindOne(context.Context, contracts.SpecialPriceFilter) (*domain.SpecialPrice, error) {
	return nil, errDown
}

func (unavailableCollection) InsertOne(context.Context, *domain.SpecialPrice) (string, error) {
	return "", errDown
}

func (unavailableCollection) UpdateOne(context.Context, contracts.SpecialPriceFilter, contracts.SpecialPriceUpdate) (int64, error) {
	return 0, errDown
}

func TestStore_PropagatesStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	s := NewStore(unavailableCollection{}, domain.DefaultValidityPolicy, "system")

	_, err := s.Upsert(ctx, newRequest("950.00", now))
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))

	_, err = s.FindByUser(ctx, "U1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = s.FindApplicable(ctx, "U1", []string{"P1"}, now)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
