package calendar

import (
	"testing"

	"flexspaces/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestResolve_VirginPairUsesRoomCapacity(t *testing.T) {
	avail := Resolve(10, nil)

	assert.Equal(t, 10, avail.TotalCapacity)
	assert.Equal(t, 0, avail.SeatsBooked)
	assert.Equal(t, 10, avail.RoomAvailable)
	assert.True(t, avail.IsAvailable)
	assert.False(t, avail.Seeded)
}

func TestResolve_VirginPairZeroCapacity(t *testing.T) {
	avail := Resolve(0, nil)

	assert.Equal(t, 0, avail.RoomAvailable)
	assert.False(t, avail.IsAvailable)
}

func TestResolve_EntryOverridesRoomCapacity(t *testing.T) {
	entry := &domain.CalendarEntry{TotalCapacity: 6, SeatsBooked: 4}

	// Room capacity is ignored once a ledger entry exists.
	avail := Resolve(50, entry)

	assert.Equal(t, 6, avail.TotalCapacity)
	assert.Equal(t, 4, avail.SeatsBooked)
	assert.Equal(t, 2, avail.RoomAvailable)
	assert.True(t, avail.IsAvailable)
	assert.True(t, avail.Seeded)
}

func TestResolve_FullEntryNotAvailable(t *testing.T) {
	entry := &domain.CalendarEntry{TotalCapacity: 8, SeatsBooked: 8}

	avail := Resolve(8, entry)

	assert.Equal(t, 0, avail.RoomAvailable)
	assert.False(t, avail.IsAvailable)
}

func TestResolve_DoesNotMutateEntry(t *testing.T) {
	entry := &domain.CalendarEntry{TotalCapacity: 5, SeatsBooked: 2}

	first := Resolve(0, entry)
	second := Resolve(0, entry)

	assert.Equal(t, first, second)
	assert.Equal(t, 5, entry.TotalCapacity)
	assert.Equal(t, 2, entry.SeatsBooked)
}
