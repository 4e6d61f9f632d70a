package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slotAt(t *testing.T, hour, minute int) TimeWindow {
	t.Helper()
	return NewSlot(time.Date(2026, 9, 7, hour, minute, 0, 0, time.Local))
}

func TestNewSlot(t *testing.T) {
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local)
	slot := NewSlot(start)

	assert.Equal(t, start, slot.Start)
	assert.Equal(t, start.Add(30*time.Minute), slot.End)
	assert.Equal(t, SlotDuration, slot.Duration())
}

func TestTimeWindow_Overlaps(t *testing.T) {
	t.Run("identical windows overlap", func(t *testing.T) {
		a := slotAt(t, 9, 0)
		b := slotAt(t, 9, 0)
		assert.True(t, a.Overlaps(b))
	})

	t.Run("partially shifted windows overlap", func(t *testing.T) {
		a := slotAt(t, 9, 0)
		b := NewSlot(a.Start.Add(15 * time.Minute))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("back to back windows do not overlap", func(t *testing.T) {
		a := slotAt(t, 9, 0)
		b := slotAt(t, 9, 30)
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("disjoint windows do not overlap", func(t *testing.T) {
		a := slotAt(t, 9, 0)
		b := slotAt(t, 11, 0)
		assert.False(t, a.Overlaps(b))
	})
}

func TestTimeWindow_Contains(t *testing.T) {
	slot := slotAt(t, 9, 0)

	assert.True(t, slot.Contains(slot.Start))
	assert.True(t, slot.Contains(slot.Start.Add(29*time.Minute)))
	assert.False(t, slot.Contains(slot.End), "end is exclusive")
	assert.False(t, slot.Contains(slot.Start.Add(-time.Minute)))
}
