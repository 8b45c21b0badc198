package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDue(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	seven := 7

	t.Run("no interval", func(t *testing.T) {
		st := Due("watering", Summer, nil, nil, now)
		assert.False(t, st.Due)
		assert.Nil(t, st.NextDue)
	})

	t.Run("never done", func(t *testing.T) {
		st := Due("watering", Summer, &seven, nil, now)
		assert.True(t, st.Due)
		require.NotNil(t, st.NextDue)
		assert.Equal(t, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), *st.NextDue)
		assert.Zero(t, st.DaysOverdue)
	})

	t.Run("not yet", func(t *testing.T) {
		last := time.Date(2026, 6, 5, 20, 0, 0, 0, time.UTC)
		st := Due("watering", Summer, &seven, &last, now)
		assert.False(t, st.Due)
		assert.Equal(t, time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC), *st.NextDue)
	})

	t.Run("due today", func(t *testing.T) {
		last := time.Date(2026, 6, 3, 8, 0, 0, 0, time.UTC)
		st := Due("watering", Summer, &seven, &last, now)
		assert.True(t, st.Due)
		assert.Zero(t, st.DaysOverdue)
	})

	t.Run("overdue", func(t *testing.T) {
		last := time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)
		st := Due("fertilizing", Summer, &seven, &last, now)
		assert.True(t, st.Due)
		assert.Equal(t, 14, st.DaysOverdue)
	})
}
