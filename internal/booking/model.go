package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a scheduled evaluation. StartsAt/EndsAt are full timestamps so
// the hard-overlap check compares real instants; Details carries the legacy
// JSONB payload whose slot list, when present, wins over the timestamps when
// reconstructing occupied catalog slots.
type Booking struct {
	ID           uuid.UUID
	SemesterID   uuid.UUID
	CourseID     uuid.UUID
	ClassID      uuid.UUID
	DisciplineID uuid.UUID
	BookedBy     uuid.UUID
	StartsAt     time.Time
	EndsAt       time.Time
	Details      []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Day returns the booking's calendar day at midnight.
func (b Booking) Day() time.Time {
	y, m, d := b.StartsAt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, b.StartsAt.Location())
}

// StartTime returns the booking's start as "HH:MM".
func (b Booking) StartTime() string {
	return b.StartsAt.Format("15:04")
}

// EndTime returns the booking's end as "HH:MM".
func (b Booking) EndTime() string {
	return b.EndsAt.Format("15:04")
}

// OverlapPair is a pair of bookings found violating the hard-overlap
// invariant, reported by the audit worker.
type OverlapPair struct {
	SemesterID uuid.UUID
	BookingA   uuid.UUID
	BookingB   uuid.UUID
}

type EventLog struct {
	ID        int64
	EventType string
	BookingID *uuid.UUID
	Payload   []byte
	CreatedAt time.Time
}
