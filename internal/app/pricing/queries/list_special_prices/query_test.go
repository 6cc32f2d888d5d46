package list_special_prices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/repo/memrepo"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/store"
)

func TestQuery_Execute(t *testing.T) {
	ctx := context.Background()
	s := store.NewStore(memrepo.NewSpecialPriceCollection(), domain.DefaultValidityPolicy, "system")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, tr := range []domain.Triple{
		{UserID: "USR001", ClientID: "CLI001", ProductID: "P1"},
		{UserID: "USR001", ClientID: "CLI001", ProductID: "P2"},
		{UserID: "USR002", ClientID: "CLI002", ProductID: "P1"},
	} {
		_, err := s.Upsert(ctx, &store.UpsertRequest{Triple: tr, SpecialPrice: domain.MustMoney("10"), BasePrice: domain.MustMoney("20"), Now: now})
		require.NoError(t, err)
	}

	q := NewQuery(s)

	resp, err := q.Execute(ctx, &Request{UserID: "USR001"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	for _, sp := range resp.SpecialPrices {
		assert.Equal(t, "USR001", sp.UserID())
	}

	all, err := q.Execute(ctx, &Request{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
}
