package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFilter_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        ProductFilter
		wantPage  int
		wantLimit int
		wantSort  string
	}{
		{name: "defaults", in: ProductFilter{}, wantPage: 1, wantLimit: DefaultPageSize, wantSort: SortByName},
		{name: "limit clamped", in: ProductFilter{Page: 2, Limit: 500, SortBy: SortByRating}, wantPage: 2, wantLimit: MaxPageSize, wantSort: SortByRating},
		{name: "unknown sort", in: ProductFilter{SortBy: "popularity"}, wantPage: 1, wantLimit: DefaultPageSize, wantSort: SortByName},
		{name: "huge page clamped", in: ProductFilter{Page: int(^uint(0) >> 1), Limit: MaxPageSize}, wantPage: MaxPage, wantLimit: MaxPageSize, wantSort: SortByName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantSort, got.SortBy)
		})
	}
}

func TestProductFilter_OffsetNeverNegative(t *testing.T) {
	f := ProductFilter{Page: int(^uint(0) >> 1), Limit: MaxPageSize}.Normalize()
	assert.Equal(t, (MaxPage-1)*MaxPageSize, f.Offset())
	assert.GreaterOrEqual(t, f.Offset(), 0)
}
