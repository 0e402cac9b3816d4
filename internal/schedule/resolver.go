package schedule

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is the per-slot result of a resolve pass. It is computed
// fresh on every date or dataset change and never persisted.
type AvailabilitySlot struct {
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	IsCurrentSlot bool   `json:"is_current_slot,omitempty"`
}

// PeriodAvailability groups resolved slots by period, in catalog order.
type PeriodAvailability struct {
	Period Period             `json:"period"`
	Slots  []AvailabilitySlot `json:"slots"`
}

// ResolveInput carries everything a resolve pass needs. Bookings must already
// be normalized (Occupied populated, see OccupiedSlots). When an existing
// booking is being edited, ExcludeID names it, CurrentSlots holds the slots it
// occupies today, and OriginalDate is the day it currently sits on.
type ResolveInput struct {
	Date           time.Time
	Bookings       []Booking
	AllowedPeriods []Period
	ExcludeID      uuid.UUID
	CurrentSlots   []string
	OriginalDate   time.Time
}

// Resolve marks each catalog slot in the allowed periods as available or not
// for the candidate date. A zero Date means no date has been selected yet:
// every slot comes back unavailable so the form can render a disabled grid.
//
// A slot is occupied when some other booking on the same calendar day covers
// it. The booking being edited does not block its own current slots as long
// as the candidate date is its original day.
func Resolve(in ResolveInput) []PeriodAvailability {
	periods := in.AllowedPeriods
	if len(periods) == 0 {
		periods = AllPeriods
	}

	editing := in.ExcludeID != uuid.Nil
	sameAsOriginal := editing && SameDay(in.Date, in.OriginalDate)

	var out []PeriodAvailability
	for _, p := range AllPeriods {
		if !periodAllowed(p, periods) {
			continue
		}

		slots := slotCatalog[p]
		resolved := make([]AvailabilitySlot, 0, len(slots))
		for _, slot := range slots {
			if in.Date.IsZero() {
				resolved = append(resolved, AvailabilitySlot{Time: slot})
				continue
			}

			occupied := false
			for _, b := range in.Bookings {
				if editing && b.ID == in.ExcludeID {
					continue
				}
				if !SameDay(b.Date, in.Date) {
					continue
				}
				if containsSlot(b.Occupied, slot) {
					occupied = true
					break
				}
			}

			isCurrent := sameAsOriginal && containsSlot(in.CurrentSlots, slot)

			resolved = append(resolved, AvailabilitySlot{
				Time:          slot,
				Available:     !occupied || isCurrent,
				IsCurrentSlot: isCurrent,
			})
		}

		out = append(out, PeriodAvailability{Period: p, Slots: resolved})
	}

	return out
}

// HasEnoughAvailableSlots reports whether the candidate date can fit an
// appointment spanning required slots. Rebooking the original day in place is
// always allowed regardless of required.
func HasEnoughAvailableSlots(in ResolveInput, required int) bool {
	if in.ExcludeID != uuid.Nil && SameDay(in.Date, in.OriginalDate) {
		return true
	}
	if required <= 0 {
		return true
	}

	available := 0
	for _, pa := range Resolve(in) {
		for _, s := range pa.Slots {
			if s.Available {
				available++
			}
		}
	}
	return available >= required
}

// SameDay reports whether a and b fall on the same calendar day. A zero time
// never matches anything.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func periodAllowed(p Period, allowed []Period) bool {
	for _, a := range allowed {
		if a == p {
			return true
		}
	}
	return false
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
