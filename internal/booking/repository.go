package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
)

// Repository contains all DB interactions needed by the booking service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBySemester(ctx context.Context, semesterID uuid.UUID) ([]Booking, error)

	// CountOverlapping supports the hard-overlap policy: half-open interval
	// overlap within a semester, optionally ignoring one booking id.
	CountOverlapping(ctx context.Context, semesterID uuid.UUID, startsAt, endsAt time.Time, excludeID uuid.UUID) (int, error)

	Insert(ctx context.Context, b Booking) (*Booking, error)
	Update(ctx context.Context, b Booking) (*Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Audit worker
	FindOverlappingPairs(ctx context.Context) ([]OverlapPair, error)

	InsertEvent(ctx context.Context, ev EventLog) error
}
