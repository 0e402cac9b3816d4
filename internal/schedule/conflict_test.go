package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Scenario E: two same-tuple bookings already exist, third candidate warns.
func TestDetectConflictSameTuple(t *testing.T) {
	d := day(2026, time.October, 2)
	courseID := uuid.New()
	classID := uuid.New()
	disciplineID := uuid.New()

	bookings := []Booking{
		{ID: uuid.New(), Date: d, CourseID: courseID, ClassID: classID, DisciplineID: disciplineID},
		{ID: uuid.New(), Date: d, CourseID: courseID, ClassID: classID, DisciplineID: disciplineID},
	}

	got := DetectConflict(ConflictInput{
		Date:         d,
		Bookings:     bookings,
		CourseID:     courseID,
		ClassID:      classID,
		DisciplineID: disciplineID,
	})

	assert.True(t, got.HasConflict)
	assert.Equal(t, 2, got.ExistingCount)
}

func TestDetectConflictAnyFieldChangeClearsIt(t *testing.T) {
	d := day(2026, time.October, 2)
	courseID := uuid.New()
	classID := uuid.New()
	disciplineID := uuid.New()

	bookings := []Booking{
		{ID: uuid.New(), Date: d, CourseID: courseID, ClassID: classID, DisciplineID: disciplineID},
	}

	base := ConflictInput{
		Date:         d,
		Bookings:     bookings,
		CourseID:     courseID,
		ClassID:      classID,
		DisciplineID: disciplineID,
	}

	tests := []struct {
		name   string
		mutate func(*ConflictInput)
	}{
		{"different date", func(in *ConflictInput) { in.Date = d.AddDate(0, 0, 1) }},
		{"different course", func(in *ConflictInput) { in.CourseID = uuid.New() }},
		{"different class", func(in *ConflictInput) { in.ClassID = uuid.New() }},
		{"different discipline", func(in *ConflictInput) { in.DisciplineID = uuid.New() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			got := DetectConflict(in)
			assert.False(t, got.HasConflict)
			assert.Equal(t, 0, got.ExistingCount)
		})
	}
}

func TestDetectConflictExcludesEditedBooking(t *testing.T) {
	d := day(2026, time.October, 2)
	courseID := uuid.New()
	classID := uuid.New()
	disciplineID := uuid.New()
	editing := uuid.New()

	bookings := []Booking{
		{ID: editing, Date: d, CourseID: courseID, ClassID: classID, DisciplineID: disciplineID},
		{ID: uuid.New(), Date: d, CourseID: courseID, ClassID: classID, DisciplineID: disciplineID},
	}

	got := DetectConflict(ConflictInput{
		Date:         d,
		Bookings:     bookings,
		CourseID:     courseID,
		ClassID:      classID,
		DisciplineID: disciplineID,
		ExcludeID:    editing,
	})

	assert.True(t, got.HasConflict)
	assert.Equal(t, 1, got.ExistingCount)
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, time.October, 2, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical windows", at(8, 0), at(9, 0), at(8, 0), at(9, 0), true},
		{"partial overlap", at(8, 0), at(9, 0), at(8, 30), at(9, 30), true},
		{"containment", at(8, 0), at(11, 0), at(9, 0), at(10, 0), true},
		{"touching endpoints do not overlap", at(8, 0), at(9, 0), at(9, 0), at(10, 0), false},
		{"disjoint", at(8, 0), at(9, 0), at(13, 0), at(14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
