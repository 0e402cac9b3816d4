package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsForCardinality(t *testing.T) {
	assert.Len(t, SlotsFor(PeriodMorning), 4)
	assert.Len(t, SlotsFor(PeriodAfternoon), 7)
	assert.Len(t, SlotsFor(PeriodEvening), 4)
	assert.Empty(t, SlotsFor(Period("night")))
}

func TestSlotsForChronologicalAndNonOverlapping(t *testing.T) {
	for _, p := range AllPeriods {
		slots := SlotsFor(p)
		for i, slot := range slots {
			start, end, ok := SlotBounds(slot)
			require.True(t, ok, "slot %q must parse", slot)
			assert.Less(t, start, end, "slot %q must run forward", slot)

			if i > 0 {
				_, prevEnd, _ := SlotBounds(slots[i-1])
				assert.LessOrEqual(t, prevEnd, start,
					"slot %q must not overlap its predecessor", slot)
			}
		}
	}
}

func TestPeriodsDoNotOverlapEachOther(t *testing.T) {
	morning := SlotsFor(PeriodMorning)
	afternoon := SlotsFor(PeriodAfternoon)
	evening := SlotsFor(PeriodEvening)

	_, morningEnd, _ := SlotBounds(morning[len(morning)-1])
	afternoonStart, _, _ := SlotBounds(afternoon[0])
	_, afternoonEnd, _ := SlotBounds(afternoon[len(afternoon)-1])
	eveningStart, _, _ := SlotBounds(evening[0])

	assert.LessOrEqual(t, morningEnd, afternoonStart)
	assert.LessOrEqual(t, afternoonEnd, eveningStart)
}

func TestSlotsForReturnsCopy(t *testing.T) {
	first := SlotsFor(PeriodMorning)
	first[0] = "mutated"
	assert.Equal(t, "07:30 - 08:20", SlotsFor(PeriodMorning)[0])
}

func TestPeriodOf(t *testing.T) {
	p, ok := PeriodOf("14:40 - 15:30")
	require.True(t, ok)
	assert.Equal(t, PeriodAfternoon, p)

	_, ok = PeriodOf("03:00 - 04:00")
	assert.False(t, ok)
}

func TestSlotBounds(t *testing.T) {
	start, end, ok := SlotBounds("07:30 - 08:20")
	require.True(t, ok)
	assert.Equal(t, "07:30", start)
	assert.Equal(t, "08:20", end)

	_, _, ok = SlotBounds("not a slot")
	assert.False(t, ok)
}
