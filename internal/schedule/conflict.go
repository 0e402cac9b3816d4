package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Conflict is the soft-conflict verdict: how many evaluations already sit on
// the same day for the same (course, class, discipline). Advisory only;
// callers surface it as a confirmation prompt, never as a hard failure.
type Conflict struct {
	HasConflict   bool `json:"has_conflict"`
	ExistingCount int  `json:"existing_count"`
}

// ConflictInput describes the candidate booking to check against the
// existing set.
type ConflictInput struct {
	Date         time.Time
	Bookings     []Booking
	CourseID     uuid.UUID
	ClassID      uuid.UUID
	DisciplineID uuid.UUID
	ExcludeID    uuid.UUID
}

// DetectConflict counts same-day bookings matching the candidate's course,
// class, and discipline, excluding the booking being edited.
func DetectConflict(in ConflictInput) Conflict {
	count := 0
	for _, b := range in.Bookings {
		if in.ExcludeID != uuid.Nil && b.ID == in.ExcludeID {
			continue
		}
		if !SameDay(b.Date, in.Date) {
			continue
		}
		if b.CourseID != in.CourseID || b.ClassID != in.ClassID || b.DisciplineID != in.DisciplineID {
			continue
		}
		count++
	}
	return Conflict{
		HasConflict:   count > 0,
		ExistingCount: count,
	}
}

// Overlaps is the hard-overlap predicate: a classic half-open interval test
// on full timestamps. The booking store enforces the same rule in SQL (the
// overlap count query and the bookings exclusion constraint); this is the
// reference form for in-memory implementations. It is deliberately a
// different, stricter check than DetectConflict and the two are not
// reconciled.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
