package schedule

import "strings"

// Period is one of the three day periods an evaluation can be scheduled in.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// AllPeriods is the display order: morning < afternoon < evening.
var AllPeriods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

// Slot catalogs are fixed. Slots within a catalog do not overlap, and the
// three catalogs do not overlap each other.
var slotCatalog = map[Period][]string{
	PeriodMorning: {
		"07:30 - 08:20",
		"08:20 - 09:10",
		"09:40 - 10:30",
		"10:30 - 11:20",
	},
	PeriodAfternoon: {
		"13:00 - 13:50",
		"13:50 - 14:40",
		"14:40 - 15:30",
		"15:30 - 16:20",
		"16:30 - 17:20",
		"17:20 - 18:10",
		"18:10 - 19:00",
	},
	PeriodEvening: {
		"19:00 - 19:50",
		"19:50 - 20:40",
		"21:00 - 21:50",
		"21:50 - 22:40",
	},
}

// SlotsFor returns the ordered slot list for a period. Unknown periods yield
// an empty list.
func SlotsFor(p Period) []string {
	slots, ok := slotCatalog[p]
	if !ok {
		return nil
	}
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

// ValidPeriod reports whether p is one of the three catalog periods.
func ValidPeriod(p Period) bool {
	_, ok := slotCatalog[p]
	return ok
}

// PeriodOf returns the period whose catalog contains the given slot string.
func PeriodOf(slot string) (Period, bool) {
	for _, p := range AllPeriods {
		for _, s := range slotCatalog[p] {
			if s == slot {
				return p, true
			}
		}
	}
	return "", false
}

// SlotBounds splits a catalog-style "HH:MM - HH:MM" slot into its start and
// end times.
func SlotBounds(slot string) (start, end string, ok bool) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return "", "", false
	}
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	if len(start) != 5 || len(end) != 5 {
		return "", "", false
	}
	return start, end, true
}
