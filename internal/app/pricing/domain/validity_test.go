package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidityWindow_Contains(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	w, err := NewValidityWindow(from, until)
	require.NoError(t, err)

	assert.True(t, w.Contains(from), "start is inclusive")
	assert.True(t, w.Contains(until), "end is inclusive")
	assert.True(t, w.Contains(from.Add(time.Hour)))
	assert.False(t, w.Contains(from.Add(-time.Nanosecond)))
	assert.False(t, w.Contains(until.Add(time.Nanosecond)))
}

func TestNewValidityWindow_RejectsInverted(t *testing.T) {
	now := time.Now()
	_, err := NewValidityWindow(now, now.Add(-time.Second))
	assert.ErrorIs(t, err, ErrInvalidValidityWindow)
}

func TestValidityPolicy_WindowFrom(t *testing.T) {
	t.Run("default is one calendar year", func(t *testing.T) {
		from := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
		w := DefaultValidityPolicy.WindowFrom(from)
		assert.Equal(t, from, w.From())
		assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC), w.Until())
	})

	t.Run("leap day normalizes", func(t *testing.T) {
		from := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
		w := DefaultValidityPolicy.WindowFrom(from)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), w.Until())
	})

	t.Run("months policy", func(t *testing.T) {
		from := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		w := ValidityPolicy{Months: 6}.WindowFrom(from)
		assert.Equal(t, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), w.Until())
	})

	assert.True(t, ValidityPolicy{}.IsZero())
	assert.False(t, DefaultValidityPolicy.IsZero())
}
