package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	redisclient "github.com/campusops/academic-scheduling/internal/redis"
	"github.com/campusops/academic-scheduling/internal/schedule"
)

const (
	EventBookingCreated   = "BOOKING_CREATED"
	EventBookingUpdated   = "BOOKING_UPDATED"
	EventBookingCancelled = "BOOKING_CANCELLED"
	EventOverlapDetected  = "OVERLAP_DETECTED"
)

var (
	ErrTimeOverlap    = errors.New("another evaluation is already booked in this time window")
	ErrInvalidSlots   = errors.New("invalid time slot selection")
	ErrDayBeingBooked = errors.New("this day is currently being booked, please retry")
)

// CatalogChecker verifies that a booking's catalog references exist and
// belong together. Implemented by the catalog service.
type CatalogChecker interface {
	ValidateBookingRefs(ctx context.Context, courseID, semesterID, classID, disciplineID uuid.UUID) error
}

type Service struct {
	repo    Repository
	catalog CatalogChecker
	locker  redisclient.Locker
	logger  *zap.Logger
}

func NewService(repo Repository, catalog CatalogChecker, locker redisclient.Locker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		locker:  locker,
		logger:  logger,
	}
}

type CreateInput struct {
	SemesterID   uuid.UUID
	CourseID     uuid.UUID
	ClassID      uuid.UUID
	DisciplineID uuid.UUID
	BookedBy     uuid.UUID
	Date         time.Time
	TimeSlots    []string
}

// Create books an evaluation. The overlap check and the insert run inside a
// per-(semester, day) Redis lock so two concurrent submissions for colliding
// windows cannot both pass the check; the bookings exclusion constraint backs
// this up at the database level.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Booking, error) {
	startsAt, endsAt, details, err := buildWindow(in.Date, in.TimeSlots)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.ValidateBookingRefs(ctx, in.CourseID, in.SemesterID, in.ClassID, in.DisciplineID); err != nil {
		return nil, err
	}

	var created *Booking

	err = s.locker.WithBookingLock(ctx, in.SemesterID, in.Date, func(lockCtx context.Context) error {
		count, err := s.repo.CountOverlapping(lockCtx, in.SemesterID, startsAt, endsAt, uuid.Nil)
		if err != nil {
			return fmt.Errorf("check overlapping bookings: %w", err)
		}
		if count > 0 {
			s.logEvent(lockCtx, nil, EventOverlapDetected, map[string]any{
				"semester_id": in.SemesterID.String(),
				"starts_at":   startsAt,
				"ends_at":     endsAt,
				"existing":    count,
			})
			return ErrTimeOverlap
		}

		b := Booking{
			ID:           uuid.New(),
			SemesterID:   in.SemesterID,
			CourseID:     in.CourseID,
			ClassID:      in.ClassID,
			DisciplineID: in.DisciplineID,
			BookedBy:     in.BookedBy,
			StartsAt:     startsAt,
			EndsAt:       endsAt,
			Details:      details,
		}

		created, err = s.repo.Insert(lockCtx, b)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		s.logEvent(lockCtx, &created.ID, EventBookingCreated, map[string]any{
			"semester_id": in.SemesterID.String(),
			"time_slots":  in.TimeSlots,
		})

		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrDayBeingBooked
		}
		return nil, err
	}

	return created, nil
}

type UpdateInput struct {
	ClassID      uuid.UUID // zero keeps the existing class
	DisciplineID uuid.UUID // zero keeps the existing discipline
	Date         time.Time
	TimeSlots    []string
}

// Update moves an existing booking to a new window, ignoring the booking's
// own row in the overlap check. Both the create and the update path report
// violations through the same sentinel errors.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Booking, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	startsAt, endsAt, details, err := buildWindow(in.Date, in.TimeSlots)
	if err != nil {
		return nil, err
	}

	classID := in.ClassID
	if classID == uuid.Nil {
		classID = existing.ClassID
	}
	disciplineID := in.DisciplineID
	if disciplineID == uuid.Nil {
		disciplineID = existing.DisciplineID
	}

	if err := s.catalog.ValidateBookingRefs(ctx, existing.CourseID, existing.SemesterID, classID, disciplineID); err != nil {
		return nil, err
	}

	var updated *Booking

	err = s.locker.WithBookingLock(ctx, existing.SemesterID, in.Date, func(lockCtx context.Context) error {
		count, err := s.repo.CountOverlapping(lockCtx, existing.SemesterID, startsAt, endsAt, id)
		if err != nil {
			return fmt.Errorf("check overlapping bookings: %w", err)
		}
		if count > 0 {
			return ErrTimeOverlap
		}

		b := *existing
		b.ClassID = classID
		b.DisciplineID = disciplineID
		b.StartsAt = startsAt
		b.EndsAt = endsAt
		b.Details = details

		updated, err = s.repo.Update(lockCtx, b)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		s.logEvent(lockCtx, &updated.ID, EventBookingUpdated, map[string]any{
			"time_slots": in.TimeSlots,
		})

		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrDayBeingBooked
		}
		return nil, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logEvent(ctx, &id, EventBookingCancelled, map[string]any{})
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListBySemester(ctx context.Context, semesterID uuid.UUID) ([]Booking, error) {
	return s.repo.ListBySemester(ctx, semesterID)
}

// AvailabilityQuery describes an availability request. ExcludeID, when set,
// names the booking being edited; its occupied slots and original day are
// derived server side so clients cannot desync them.
type AvailabilityQuery struct {
	SemesterID uuid.UUID
	Date       time.Time
	Periods    []schedule.Period
	ExcludeID  uuid.UUID
}

// Availability resolves the slot grid for a candidate date against the
// semester's bookings.
func (s *Service) Availability(ctx context.Context, q AvailabilityQuery) ([]schedule.PeriodAvailability, error) {
	in, err := s.resolveInput(ctx, q)
	if err != nil {
		return nil, err
	}
	return schedule.Resolve(in), nil
}

// CheckCapacity reports whether the candidate date can fit an appointment
// spanning required slots, with the same-day rebooking exemption.
func (s *Service) CheckCapacity(ctx context.Context, q AvailabilityQuery, required int) (bool, error) {
	in, err := s.resolveInput(ctx, q)
	if err != nil {
		return false, err
	}
	return schedule.HasEnoughAvailableSlots(in, required), nil
}

type ConflictQuery struct {
	SemesterID   uuid.UUID
	Date         time.Time
	CourseID     uuid.UUID
	ClassID      uuid.UUID
	DisciplineID uuid.UUID
	ExcludeID    uuid.UUID
}

// CheckConflict runs the advisory same-day same-(course, class, discipline)
// check. The result never blocks a write; callers surface it as a
// confirmation prompt.
func (s *Service) CheckConflict(ctx context.Context, q ConflictQuery) (schedule.Conflict, error) {
	bookings, err := s.repo.ListBySemester(ctx, q.SemesterID)
	if err != nil {
		return schedule.Conflict{}, fmt.Errorf("list bookings: %w", err)
	}

	return schedule.DetectConflict(schedule.ConflictInput{
		Date:         q.Date,
		Bookings:     s.normalize(bookings),
		CourseID:     q.CourseID,
		ClassID:      q.ClassID,
		DisciplineID: q.DisciplineID,
		ExcludeID:    q.ExcludeID,
	}), nil
}

// AuditOverlaps scans for booking pairs violating the hard-overlap invariant
// and records an event per pair. Intended to be called by the audit worker.
func (s *Service) AuditOverlaps(ctx context.Context) (int, error) {
	pairs, err := s.repo.FindOverlappingPairs(ctx)
	if err != nil {
		return 0, fmt.Errorf("find overlapping pairs: %w", err)
	}

	for _, p := range pairs {
		s.logger.Warn("hard-overlap violation found",
			zap.String("semester_id", p.SemesterID.String()),
			zap.String("booking_a", p.BookingA.String()),
			zap.String("booking_b", p.BookingB.String()),
		)
		bookingA := p.BookingA
		s.logEvent(ctx, &bookingA, EventOverlapDetected, map[string]any{
			"semester_id": p.SemesterID.String(),
			"booking_b":   p.BookingB.String(),
			"source":      "audit",
		})
	}

	return len(pairs), nil
}

func (s *Service) resolveInput(ctx context.Context, q AvailabilityQuery) (schedule.ResolveInput, error) {
	bookings, err := s.repo.ListBySemester(ctx, q.SemesterID)
	if err != nil {
		return schedule.ResolveInput{}, fmt.Errorf("list bookings: %w", err)
	}

	in := schedule.ResolveInput{
		Date:           q.Date,
		Bookings:       s.normalize(bookings),
		AllowedPeriods: q.Periods,
		ExcludeID:      q.ExcludeID,
	}

	if q.ExcludeID != uuid.Nil {
		for _, b := range bookings {
			if b.ID == q.ExcludeID {
				in.CurrentSlots = schedule.OccupiedSlots(b.Details, b.StartTime(), b.EndTime(), s.logger)
				in.OriginalDate = b.Day()
				break
			}
		}
	}

	return in, nil
}

// normalize converts stored bookings into the resolver's view, applying the
// occupied-slot precedence rules once at the fetch boundary.
func (s *Service) normalize(bookings []Booking) []schedule.Booking {
	out := make([]schedule.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, schedule.Booking{
			ID:           b.ID,
			SemesterID:   b.SemesterID,
			CourseID:     b.CourseID,
			ClassID:      b.ClassID,
			DisciplineID: b.DisciplineID,
			Date:         b.Day(),
			Occupied:     schedule.OccupiedSlots(b.Details, b.StartTime(), b.EndTime(), s.logger),
		})
	}
	return out
}

func (s *Service) logEvent(ctx context.Context, bookingID *uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to marshal event payload",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		data = nil
	}

	ev := EventLog{
		EventType: eventType,
		BookingID: bookingID,
		Payload:   data,
		CreatedAt: time.Now(),
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		s.logger.Error("failed to insert event log",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// legacyDetailsPayload mirrors the historical details shape so freshly
// written rows stay readable by older consumers.
type legacyDetailsPayload struct {
	TimeSlots []string `json:"timeSlots"`
}

// buildWindow validates the selected catalog slots and produces the booking
// window. Slots must all come from one period; the window spans the earliest
// start to the latest end.
func buildWindow(date time.Time, slots []string) (startsAt, endsAt time.Time, details []byte, err error) {
	if date.IsZero() {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: date required", ErrInvalidSlots)
	}
	if len(slots) == 0 {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: at least one slot required", ErrInvalidSlots)
	}

	var period schedule.Period
	seen := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		p, ok := schedule.PeriodOf(slot)
		if !ok {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidSlots, slot)
		}
		if period == "" {
			period = p
		} else if p != period {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: slots span multiple periods", ErrInvalidSlots)
		}
		if _, dup := seen[slot]; dup {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: duplicate slot %q", ErrInvalidSlots, slot)
		}
		seen[slot] = struct{}{}
	}

	// Reorder into catalog order so the window bounds are well defined.
	ordered := make([]string, 0, len(slots))
	for _, slot := range schedule.SlotsFor(period) {
		if _, ok := seen[slot]; ok {
			ordered = append(ordered, slot)
		}
	}

	firstStart, _, _ := schedule.SlotBounds(ordered[0])
	_, lastEnd, _ := schedule.SlotBounds(ordered[len(ordered)-1])

	startsAt, err = combine(date, firstStart)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	endsAt, err = combine(date, lastEnd)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	details, err = json.Marshal(legacyDetailsPayload{TimeSlots: ordered})
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("marshal details: %w", err)
	}

	return startsAt, endsAt, details, nil
}

func combine(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad time %q", ErrInvalidSlots, hhmm)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
