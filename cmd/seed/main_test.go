package main

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingTargetsCoverEveryClass(t *testing.T) {
	semA := seededSemester{ID: uuid.New(), CourseID: uuid.New()}
	semB := seededSemester{ID: uuid.New(), CourseID: uuid.New()}

	classes := map[uuid.UUID][]uuid.UUID{
		semA.ID: {uuid.New(), uuid.New()},
		semB.ID: {uuid.New()},
	}
	disciplines := map[uuid.UUID]uuid.UUID{
		semA.ID: uuid.New(),
		semB.ID: uuid.New(),
	}

	targets := bookingTargets([]seededSemester{semA, semB}, classes, disciplines)
	require.Len(t, targets, 3)

	seen := make(map[uuid.UUID]bool)
	for _, target := range targets {
		seen[target.ClassID] = true
		assert.Equal(t, disciplines[target.Semester.ID], target.DisciplineID)
	}
	for _, classIDs := range classes {
		for _, id := range classIDs {
			assert.True(t, seen[id], "class %s has no booking target", id)
		}
	}
}

func TestNextWeekdaySkipsWeekends(t *testing.T) {
	saturday := time.Date(2026, time.September, 19, 15, 30, 0, 0, time.UTC)

	got := nextWeekday(saturday)

	assert.Equal(t, time.Monday, got.Weekday())
	assert.Equal(t, time.Date(2026, time.September, 21, 0, 0, 0, 0, time.UTC), got)

	// Already a weekday: only the time of day is stripped.
	assert.Equal(t, got, nextWeekday(got))
}
