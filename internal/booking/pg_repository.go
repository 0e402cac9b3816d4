package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// 23P01 is raised by the bookings exclusion constraint when two writes for
// overlapping windows slip past the application-level check.
const exclusionViolation = "23P01"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var details []byte

	err := row.Scan(
		&b.ID,
		&b.SemesterID,
		&b.CourseID,
		&b.ClassID,
		&b.DisciplineID,
		&b.BookedBy,
		&b.StartsAt,
		&b.EndsAt,
		&details,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	b.Details = details
	return &b, nil
}

const bookingColumns = `id, semester_id, course_id, class_id, discipline_id, booked_by, starts_at, ends_at, details, created_at, updated_at`

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1
	`, id)
	return scanBooking(row)
}

func (r *PgRepository) ListBySemester(ctx context.Context, semesterID uuid.UUID) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE semester_id = $1
		ORDER BY starts_at
	`, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) CountOverlapping(ctx context.Context, semesterID uuid.UUID, startsAt, endsAt time.Time, excludeID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM bookings
		WHERE semester_id = $1
		  AND starts_at < $3
		  AND ends_at > $2
		  AND id <> $4
	`, semesterID, startsAt, endsAt, excludeID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgRepository) Insert(ctx context.Context, b Booking) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (id, semester_id, course_id, class_id, discipline_id, booked_by, starts_at, ends_at, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING `+bookingColumns+`
	`, b.ID, b.SemesterID, b.CourseID, b.ClassID, b.DisciplineID, b.BookedBy, b.StartsAt, b.EndsAt, b.Details)

	created, err := scanBooking(row)
	if err != nil {
		return nil, mapOverlapErr(err)
	}
	return created, nil
}

func (r *PgRepository) Update(ctx context.Context, b Booking) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE bookings
		SET class_id = $2,
		    discipline_id = $3,
		    starts_at = $4,
		    ends_at = $5,
		    details = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+bookingColumns+`
	`, b.ID, b.ClassID, b.DisciplineID, b.StartsAt, b.EndsAt, b.Details)

	updated, err := scanBooking(row)
	if err != nil {
		return nil, mapOverlapErr(err)
	}
	return updated, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *PgRepository) FindOverlappingPairs(ctx context.Context) ([]OverlapPair, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.semester_id, a.id, b.id
		FROM bookings a
		JOIN bookings b
		  ON a.semester_id = b.semester_id
		 AND a.id < b.id
		 AND a.starts_at < b.ends_at
		 AND b.starts_at < a.ends_at
		ORDER BY a.semester_id, a.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OverlapPair
	for rows.Next() {
		var p OverlapPair
		if err := rows.Scan(&p.SemesterID, &p.BookingA, &p.BookingB); err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) InsertEvent(ctx context.Context, ev EventLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO event_logs (event_type, booking_id, payload, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`, ev.EventType, ev.BookingID, ev.Payload, nullableTime(ev.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}

	return nil
}

func mapOverlapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return ErrTimeOverlap
	}
	return err
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
