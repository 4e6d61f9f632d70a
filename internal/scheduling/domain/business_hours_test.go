package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-09-07 is a Monday.
var monday = time.Date(2026, 9, 7, 12, 0, 0, 0, time.Local)

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay(monday))
	assert.True(t, IsBusinessDay(monday.AddDate(0, 0, 4)), "friday")
	assert.False(t, IsBusinessDay(monday.AddDate(0, 0, 5)), "saturday")
	assert.False(t, IsBusinessDay(monday.AddDate(0, 0, 6)), "sunday")
}

func TestNextBusinessDay(t *testing.T) {
	t.Run("midweek advances one day", func(t *testing.T) {
		next := NextBusinessDay(monday)
		assert.Equal(t, StartOfDay(monday).AddDate(0, 0, 1), next)
	})

	t.Run("friday rolls over the weekend", func(t *testing.T) {
		friday := monday.AddDate(0, 0, 4)
		next := NextBusinessDay(friday)
		assert.Equal(t, StartOfDay(monday).AddDate(0, 0, 7), next)
	})

	t.Run("saturday rolls to monday", func(t *testing.T) {
		saturday := monday.AddDate(0, 0, 5)
		next := NextBusinessDay(saturday)
		assert.Equal(t, StartOfDay(monday).AddDate(0, 0, 7), next)
	})
}

func TestDayWindow(t *testing.T) {
	w := DayWindow(monday)
	assert.Equal(t, time.Date(2026, 9, 7, 8, 0, 0, 0, time.Local), w.Start)
	assert.Equal(t, time.Date(2026, 9, 7, 18, 0, 0, 0, time.Local), w.End)
}

func TestSlotGrid(t *testing.T) {
	t.Run("covers opening to closing on the half-hour", func(t *testing.T) {
		slots := SlotGrid(monday)

		require.Len(t, slots, 20)
		assert.Equal(t, time.Date(2026, 9, 7, 8, 0, 0, 0, time.Local), slots[0].Start)
		assert.Equal(t, time.Date(2026, 9, 7, 8, 30, 0, 0, time.Local), slots[1].Start)
		last := slots[len(slots)-1]
		assert.Equal(t, time.Date(2026, 9, 7, 17, 30, 0, 0, time.Local), last.Start)
		assert.Equal(t, time.Date(2026, 9, 7, 18, 0, 0, 0, time.Local), last.End)
	})

	t.Run("nil on weekends", func(t *testing.T) {
		assert.Nil(t, SlotGrid(monday.AddDate(0, 0, 5)))
		assert.Nil(t, SlotGrid(monday.AddDate(0, 0, 6)))
	})
}

func TestWithinBusinessHours(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"opening slot", time.Date(2026, 9, 7, 8, 0, 0, 0, time.Local), true},
		{"last slot", time.Date(2026, 9, 7, 17, 30, 0, 0, time.Local), true},
		{"before opening", time.Date(2026, 9, 7, 7, 30, 0, 0, time.Local), false},
		{"runs past closing", time.Date(2026, 9, 7, 17, 45, 0, 0, time.Local), false},
		{"saturday", time.Date(2026, 9, 12, 10, 0, 0, 0, time.Local), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WithinBusinessHours(NewSlot(tc.start)))
		})
	}
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(monday, StartOfDay(monday)))
	assert.False(t, SameDay(monday, monday.AddDate(0, 0, 1)))
}
