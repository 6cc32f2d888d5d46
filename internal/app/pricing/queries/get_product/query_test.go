package get_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/repo/memrepo"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/resolver"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/store"
	"github.com/light-bringer/specialprice-service/internal/pkg/clock"
)

func TestQuery_Execute(t *testing.T) {
	ctx := context.Background()
	p := domain.Product{ID: "P1", Name: "Google Pixel 8 Pro", BasePrice: domain.MustMoney("100"), SKU: "GP8P-007"}
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s := store.NewStore(memrepo.NewSpecialPriceCollection(), domain.DefaultValidityPolicy, "system")
	q := NewQuery(memrepo.NewCatalog(p), resolver.New(s), clk)

	_, err := s.Upsert(ctx, &store.UpsertRequest{
		Triple:       domain.Triple{UserID: "U1", ClientID: "C1", ProductID: "P1"},
		SpecialPrice: domain.MustMoney("85"),
		BasePrice:    p.BasePrice,
		Now:          clk.Now(),
	})
	require.NoError(t, err)

	t.Run("with user", func(t *testing.T) {
		view, err := q.Execute(ctx, &Request{ProductID: "P1", UserID: "U1"})
		require.NoError(t, err)
		assert.True(t, view.HasSpecialPrice)
		assert.Equal(t, "15.0", view.DiscountPercent.StringFixed(1))
	})

	t.Run("without user", func(t *testing.T) {
		view, err := q.Execute(ctx, &Request{ProductID: "P1"})
		require.NoError(t, err)
		assert.False(t, view.HasSpecialPrice)
	})

	t.Run("after expiry", func(t *testing.T) {
		clk.Set(clk.Now().AddDate(2, 0, 0))
		defer clk.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

		view, err := q.Execute(ctx, &Request{ProductID: "P1", UserID: "U1"})
		require.NoError(t, err)
		assert.False(t, view.HasSpecialPrice)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{ProductID: "missing"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, domain.ErrEmptyProductID)
	})
}
