package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid amount", func(t *testing.T) {
		m, err := NewMoneyFromString("1299.99")
		require.NoError(t, err)
		assert.Equal(t, "1299.99", m.String())
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := NewMoneyFromString("abc")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid money amount")
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	m := NewMoneyFromFloat(950.1)
	assert.True(t, m.Equals(MustMoney("950.1")))
}

func TestMoney_Comparisons(t *testing.T) {
	low := MustMoney("85")
	high := MustMoney("100")

	assert.True(t, low.LessThan(high))
	assert.True(t, high.GreaterThan(low))
	assert.False(t, high.LessThan(high))
	assert.True(t, high.Equals(MustMoney("100.00")))
	assert.True(t, high.IsPositive())
	assert.True(t, MustMoney("0").IsZero())
	assert.True(t, MustMoney("-1").IsNegative())
}

func TestMoney_Sub(t *testing.T) {
	got := MustMoney("1299.99").Sub(MustMoney("950"))
	assert.Equal(t, "349.99", got.String())
}

func TestMoney_Float64(t *testing.T) {
	assert.Equal(t, 85.5, MustMoney("85.50").Float64())
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr error
	}{
		{"950", nil},
		{"950.1", nil},
		{"1299.99", nil},
		{"950.100", nil},
		{"1299.989", ErrPricePrecision},
		{"0.001", ErrPricePrecision},
		{"0", ErrInvalidPrice},
		{"-5.00", ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := ValidatePrice(MustMoney(tt.amount))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
		})
	}
}
