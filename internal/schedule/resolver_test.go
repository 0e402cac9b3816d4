package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func slotByTime(t *testing.T, out []PeriodAvailability, slot string) AvailabilitySlot {
	t.Helper()
	for _, pa := range out {
		for _, s := range pa.Slots {
			if s.Time == slot {
				return s
			}
		}
	}
	t.Fatalf("slot %q not found in resolved output", slot)
	return AvailabilitySlot{}
}

func TestResolveNoDateSelected(t *testing.T) {
	out := Resolve(ResolveInput{
		AllowedPeriods: []Period{PeriodMorning, PeriodEvening},
	})

	require.Len(t, out, 2)
	assert.Equal(t, PeriodMorning, out[0].Period)
	assert.Equal(t, PeriodEvening, out[1].Period)
	for _, pa := range out {
		for _, s := range pa.Slots {
			assert.False(t, s.Available, "slot %q must be unavailable without a date", s.Time)
		}
	}
}

func TestResolveEmptyDatasetAllAvailable(t *testing.T) {
	out := Resolve(ResolveInput{Date: day(2026, time.September, 14)})

	require.Len(t, out, 3)
	total := 0
	for _, pa := range out {
		for _, s := range pa.Slots {
			assert.True(t, s.Available)
			total++
		}
	}
	assert.Equal(t, 15, total)
}

// Scenario A: morning catalog, no bookings, date set.
func TestResolveMorningNoBookings(t *testing.T) {
	out := Resolve(ResolveInput{
		Date:           day(2026, time.September, 15),
		AllowedPeriods: []Period{PeriodMorning},
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].Slots, 4)
	for _, s := range out[0].Slots {
		assert.True(t, s.Available)
		assert.False(t, s.IsCurrentSlot)
	}
}

// Scenario B: one booking holding 07:30 - 08:20 on D blocks exactly that slot.
func TestResolveOccupiedSlotUnavailable(t *testing.T) {
	d := day(2026, time.September, 15)
	booked := Booking{
		ID:       uuid.New(),
		Date:     d,
		Occupied: []string{"07:30 - 08:20"},
	}

	out := Resolve(ResolveInput{
		Date:           d,
		Bookings:       []Booking{booked},
		AllowedPeriods: []Period{PeriodMorning},
	})

	require.Len(t, out, 1)
	for _, s := range out[0].Slots {
		if s.Time == "07:30 - 08:20" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available)
		}
	}
}

// Scenario C: editing the booking frees its own slot and flags it as current.
func TestResolveSelfExclusionOnOriginalDay(t *testing.T) {
	d := day(2026, time.September, 15)
	id := uuid.New()
	booked := Booking{ID: id, Date: d, Occupied: []string{"07:30 - 08:20"}}

	out := Resolve(ResolveInput{
		Date:           d,
		Bookings:       []Booking{booked},
		AllowedPeriods: []Period{PeriodMorning},
		ExcludeID:      id,
		CurrentSlots:   []string{"07:30 - 08:20"},
		OriginalDate:   d,
	})

	s := slotByTime(t, out, "07:30 - 08:20")
	assert.True(t, s.Available)
	assert.True(t, s.IsCurrentSlot)
}

// Scenario D: moving the edited booking to another day drops the exemption.
func TestResolveSelfExclusionDisabledOnOtherDay(t *testing.T) {
	d := day(2026, time.September, 15)
	d2 := day(2026, time.September, 16)
	id := uuid.New()
	other := uuid.New()

	bookings := []Booking{
		{ID: id, Date: d, Occupied: []string{"07:30 - 08:20"}},
		{ID: other, Date: d2, Occupied: []string{"08:20 - 09:10"}},
	}

	out := Resolve(ResolveInput{
		Date:           d2,
		Bookings:       bookings,
		AllowedPeriods: []Period{PeriodMorning},
		ExcludeID:      id,
		CurrentSlots:   []string{"07:30 - 08:20"},
		OriginalDate:   d,
	})

	for _, s := range out[0].Slots {
		assert.False(t, s.IsCurrentSlot, "isCurrentSlot never set on a different day")
	}
	// Normal occupancy for d2 applies: the other booking still blocks its slot.
	assert.False(t, slotByTime(t, out, "08:20 - 09:10").Available)
	// The edited booking sits on d, so it does not block anything on d2.
	assert.True(t, slotByTime(t, out, "07:30 - 08:20").Available)
}

// A different appointment occupying slot S keeps S unavailable even when
// editing.
func TestResolveOtherBookingStillBlocks(t *testing.T) {
	d := day(2026, time.September, 15)
	editing := uuid.New()

	out := Resolve(ResolveInput{
		Date: d,
		Bookings: []Booking{
			{ID: uuid.New(), Date: d, Occupied: []string{"13:00 - 13:50"}},
		},
		AllowedPeriods: []Period{PeriodAfternoon},
		ExcludeID:      editing,
		CurrentSlots:   []string{"13:50 - 14:40"},
		OriginalDate:   d,
	})

	assert.False(t, slotByTime(t, out, "13:00 - 13:50").Available)
}

func TestResolveOrdering(t *testing.T) {
	// Allowed periods given out of order still come back in catalog order.
	out := Resolve(ResolveInput{
		Date:           day(2026, time.September, 15),
		AllowedPeriods: []Period{PeriodEvening, PeriodMorning},
	})

	require.Len(t, out, 2)
	assert.Equal(t, PeriodMorning, out[0].Period)
	assert.Equal(t, PeriodEvening, out[1].Period)
	assert.Equal(t, SlotsFor(PeriodMorning), slotTimes(out[0].Slots))
	assert.Equal(t, SlotsFor(PeriodEvening), slotTimes(out[1].Slots))
}

func slotTimes(slots []AvailabilitySlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Time
	}
	return out
}

func TestHasEnoughAvailableSlotsSameDayExemption(t *testing.T) {
	d := day(2026, time.September, 15)
	id := uuid.New()

	in := ResolveInput{
		Date:           d,
		AllowedPeriods: []Period{PeriodMorning},
		ExcludeID:      id,
		OriginalDate:   d,
	}

	// Rebooking the original day is always allowed, even for an absurd count.
	assert.True(t, HasEnoughAvailableSlots(in, 999))
}

func TestHasEnoughAvailableSlotsCounting(t *testing.T) {
	d := day(2026, time.September, 15)

	bookings := []Booking{
		{ID: uuid.New(), Date: d, Occupied: []string{"07:30 - 08:20", "08:20 - 09:10"}},
	}

	in := ResolveInput{
		Date:           d,
		Bookings:       bookings,
		AllowedPeriods: []Period{PeriodMorning},
	}

	// Two of four morning slots remain.
	assert.True(t, HasEnoughAvailableSlots(in, 2))
	assert.False(t, HasEnoughAvailableSlots(in, 3))
	assert.True(t, HasEnoughAvailableSlots(in, 0))
}

func TestHasEnoughAvailableSlotsNoDate(t *testing.T) {
	in := ResolveInput{AllowedPeriods: []Period{PeriodMorning}}
	assert.False(t, HasEnoughAvailableSlots(in, 1))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, time.September, 15, 8, 30, 0, 0, time.UTC)
	b := time.Date(2026, time.September, 15, 22, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
	assert.False(t, SameDay(a, time.Time{}))
	assert.False(t, SameDay(time.Time{}, time.Time{}))
}
