package pgrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

func TestSpecialPriceRow_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sp, err := domain.NewSpecialPrice(
		domain.Triple{UserID: "USR001", ClientID: "CLI001", ProductID: "P1"},
		domain.MustMoney("85"), domain.MustMoney("100"),
		domain.ProductSnapshot{Name: "Widget", Image: "w.png", BasePrice: domain.MustMoney("100")},
		domain.DefaultValidityPolicy, "system", now,
	)
	require.NoError(t, err)

	back := newSpecialPriceRow("0b6b3c1e-0000-4000-8000-000000000001", sp).toDomain()
	assert.Equal(t, "0b6b3c1e-0000-4000-8000-000000000001", back.ID())
	assert.Equal(t, sp.Triple(), back.Triple())
	assert.Equal(t, "15.0", back.DiscountPercent().StringFixed(1))
	assert.Equal(t, "w.png", back.Snapshot().Image)
	assert.True(t, back.Active())
}

func TestSkip(t *testing.T) {
	assert.True(t, skip(contracts.SpecialPriceFilter{ProductIDs: []string{}}))
	assert.True(t, skip(contracts.SpecialPriceFilter{ID: "not-a-uuid"}))
	assert.False(t, skip(contracts.SpecialPriceFilter{UserID: "USR001"}))
	assert.False(t, skip(contracts.SpecialPriceFilter{ID: "0b6b3c1e-0000-4000-8000-000000000001"}))
}
