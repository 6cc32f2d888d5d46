//go:build integration

package repo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/store"
	"github.com/light-bringer/specialprice-service/internal/models/m_product"
	"github.com/light-bringer/specialprice-service/internal/models/m_special_price"
)

// The emulator database is created by cmd/migrate before the tests run.
func setupSpanner(t *testing.T) *spanner.Client {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}
	db := os.Getenv("SPANNER_TEST_DATABASE")
	if db == "" {
		db = "projects/test-project/instances/dev-instance/databases/special-price-db"
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, db)
	require.NoError(t, err, "failed to create Spanner client")

	clean := func() {
		_, err := client.Apply(ctx, []*spanner.Mutation{
			spanner.Delete(m_special_price.TableName, spanner.AllKeys()),
			spanner.Delete(m_product.TableName, spanner.AllKeys()),
		})
		require.NoError(t, err, "failed to clean database")
	}
	clean()
	t.Cleanup(func() {
		clean()
		client.Close()
	})
	return client
}

func TestSpecialPriceRepo_UpsertThroughStore(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	s := store.NewStore(NewSpecialPriceRepo(client), domain.DefaultValidityPolicy, "system")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	req := &store.UpsertRequest{
		Triple:       domain.Triple{UserID: "U1", ClientID: "C1", ProductID: "P1"},
		SpecialPrice: domain.MustMoney("950.00"),
		BasePrice:    domain.MustMoney("1299.99"),
		Snapshot:     domain.ProductSnapshot{Name: "iPhone 15 Pro Max", BasePrice: domain.MustMoney("1299.99")},
		Now:          now,
	}

	created, err := s.Upsert(ctx, req)
	require.NoError(t, err)
	assert.True(t, created.WasCreated)
	assert.Equal(t, "26.9", created.Record.DiscountPercent().StringFixed(1))

	req.SpecialPrice = domain.MustMoney("900.00")
	req.Now = now.Add(time.Hour)
	updated, err := s.Upsert(ctx, req)
	require.NoError(t, err)
	assert.False(t, updated.WasCreated)
	assert.True(t, updated.Modified)

	records, err := s.FindByUser(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "900.00", records[0].SpecialPrice().String())
	assert.Equal(t, "30.8", records[0].DiscountPercent().StringFixed(1))
	assert.Equal(t, now, records[0].ValidFrom())
	assert.Equal(t, now.AddDate(1, 0, 0), records[0].ValidUntil())
}

func TestSpecialPriceRepo_InsertDuplicateTriple(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	repo := NewSpecialPriceRepo(client)
	now := time.Now().UTC()

	build := func() *domain.SpecialPrice {
		sp, err := domain.NewSpecialPrice(domain.Triple{UserID: "U1", ClientID: "C1", ProductID: "P1"},
			domain.MustMoney("85"), domain.MustMoney("100"), domain.ProductSnapshot{}, domain.DefaultValidityPolicy, "system", now)
		require.NoError(t, err)
		return sp
	}

	_, err := repo.InsertOne(ctx, build())
	require.NoError(t, err)

	_, err = repo.InsertOne(ctx, build())
	assert.ErrorIs(t, err, domain.ErrDuplicateRecord)
}

func TestSpecialPriceRepo_ConcurrentUpserts(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	s := store.NewStore(NewSpecialPriceRepo(client), domain.DefaultValidityPolicy, "system")
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Upsert(ctx, &store.UpsertRequest{
				Triple:       domain.Triple{UserID: "U1", ClientID: "C1", ProductID: "P1"},
				SpecialPrice: domain.MustMoney(fmt.Sprintf("%d", 80+i)),
				BasePrice:    domain.MustMoney("100"),
				Now:          now,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	records, err := s.FindByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSpecialPriceRepo_FindApplicable(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	repo := NewSpecialPriceRepo(client)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	insert := func(productID string, from, until time.Time, active bool) {
		sp := domain.ReconstructSpecialPrice("", domain.Triple{UserID: "U1", ClientID: "C1", ProductID: productID},
			domain.MustMoney("85"), decimal.RequireFromString("15"), from, until, active,
			domain.ProductSnapshot{BasePrice: domain.MustMoney("100")}, "system", from, from)
		_, err := repo.InsertOne(ctx, sp)
		require.NoError(t, err)
	}
	insert("current", now.Add(-time.Hour), now.Add(time.Hour), true)
	insert("future", now.Add(time.Hour), now.AddDate(1, 0, 0), true)
	insert("expired", now.AddDate(-1, 0, 0), now.Add(-time.Second), true)
	insert("inactive", now.Add(-time.Hour), now.Add(time.Hour), false)

	s := store.NewStore(repo, domain.DefaultValidityPolicy, "system")
	got, err := s.FindApplicable(ctx, "U1", []string{"current", "future", "expired", "inactive"}, now)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, "current")
}

func TestCatalogRepo_InsertGetList(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	catalog := NewCatalogRepo(client)
	now := time.Now().UTC()

	for _, p := range []domain.Product{
		{Name: "MacBook Pro 16", Description: "M3 Max", BasePrice: domain.MustMoney("3499.99"), Category: "Laptops", Stock: 15, SKU: "MBP16M3-001", Brand: "Apple", Rating: decimal.RequireFromString("4.9"), CreatedAt: now, UpdatedAt: now},
		{Name: "Dell XPS 13 Plus", BasePrice: domain.MustMoney("1899.99"), Category: "Laptops", Stock: 25, SKU: "XPS13P-002", Brand: "Dell", Rating: decimal.RequireFromString("4.6"), CreatedAt: now, UpdatedAt: now},
		{Name: "OnePlus 12", BasePrice: domain.MustMoney("799.99"), Category: "Smartphones", Stock: 40, SKU: "OP12-008", Brand: "OnePlus", Rating: decimal.RequireFromString("4.4"), CreatedAt: now, UpdatedAt: now},
	} {
		p := p
		_, err := catalog.Insert(ctx, &p)
		require.NoError(t, err)
	}

	page, err := catalog.List(ctx, contracts.ProductFilter{Category: "Laptops", SortBy: contracts.SortByPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "XPS13P-002", page.Products[0].SKU)

	search, err := catalog.List(ctx, contracts.ProductFilter{Search: "apple"})
	require.NoError(t, err)
	require.Len(t, search.Products, 1)

	got, err := catalog.GetByID(ctx, search.Products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "3499.99", got.BasePrice.String())

	_, err = catalog.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	found, err := catalog.GetByIDs(ctx, []string{page.Products[1].ID, "missing", page.Products[0].ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "MBP16M3-001", found[page.Products[1].ID].SKU)
}
