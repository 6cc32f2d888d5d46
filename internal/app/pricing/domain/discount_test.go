package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		special string
		want    string
	}{
		{"round fifteen", "100", "85", "15.0"},
		{"laptop first offer", "1299.99", "950.00", "26.9"},
		{"laptop second offer", "1299.99", "900.00", "30.8"},
		{"half rounds up", "200", "100.10", "50.0"},
		{"small half rounds up", "1000", "999.45", "0.1"},
		{"below half rounds down", "3", "2", "33.3"},
		{"two thirds", "3", "1", "66.7"},
		{"near total discount", "100", "0.01", "100.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeDiscount(MustMoney(tt.base), MustMoney(tt.special))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(1))
		})
	}
}

func TestComputeDiscount_Rejects(t *testing.T) {
	t.Run("special equal to base", func(t *testing.T) {
		_, err := ComputeDiscount(MustMoney("100"), MustMoney("100.00"))
		assert.ErrorIs(t, err, ErrInvalidSpecialPrice)
	})

	t.Run("special above base", func(t *testing.T) {
		_, err := ComputeDiscount(MustMoney("100"), MustMoney("120"))
		assert.ErrorIs(t, err, ErrInvalidSpecialPrice)
	})

	t.Run("zero special price", func(t *testing.T) {
		_, err := ComputeDiscount(MustMoney("100"), MustMoney("0"))
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("negative base price", func(t *testing.T) {
		_, err := ComputeDiscount(MustMoney("-5"), MustMoney("1"))
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestComputeDiscount_Deterministic(t *testing.T) {
	base := MustMoney("1299.99")
	special := MustMoney("950")

	first, err := ComputeDiscount(base, special)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ComputeDiscount(base, special)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}
