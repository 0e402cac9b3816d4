package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusops/academic-scheduling/internal/booking"
	"github.com/campusops/academic-scheduling/internal/schedule"
)

// parseAvailabilityQuery reads the shared query parameters of the
// availability endpoints. date is optional: absent means "no date selected"
// and every slot resolves unavailable.
func parseAvailabilityQuery(w http.ResponseWriter, r *http.Request) (booking.AvailabilityQuery, bool) {
	q := r.URL.Query()

	semesterID, err := uuid.Parse(q.Get("semester_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_semester_id", "semester_id must be a valid UUID")
		return booking.AvailabilityQuery{}, false
	}

	out := booking.AvailabilityQuery{SemesterID: semesterID}

	if raw := q.Get("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return booking.AvailabilityQuery{}, false
		}
		out.Date = date
	}

	if raw := q.Get("periods"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			period := schedule.Period(strings.TrimSpace(p))
			if !schedule.ValidPeriod(period) {
				writeError(w, http.StatusBadRequest, "invalid_period", "periods must be morning, afternoon, or evening")
				return booking.AvailabilityQuery{}, false
			}
			out.Periods = append(out.Periods, period)
		}
	}

	if raw := q.Get("exclude"); raw != "" {
		excludeID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_exclude", "exclude must be a valid UUID")
			return booking.AvailabilityQuery{}, false
		}
		out.ExcludeID = excludeID
	}

	return out, true
}

func availabilityHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := parseAvailabilityQuery(w, r)
		if !ok {
			return
		}

		periods, err := svc.Availability(r.Context(), q)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		resp := AvailabilityResponse{Periods: periods}
		if !q.Date.IsZero() {
			resp.Date = q.Date.Format(dateLayout)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func capacityHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := parseAvailabilityQuery(w, r)
		if !ok {
			return
		}

		required, err := strconv.Atoi(r.URL.Query().Get("required"))
		if err != nil || required < 0 {
			writeError(w, http.StatusBadRequest, "invalid_required", "required must be a non-negative integer")
			return
		}

		fits, err := svc.CheckCapacity(r.Context(), q, required)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CapacityResponse{Fits: fits, Required: required})
	}
}

func conflictCheckHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		semesterID, err := uuid.Parse(q.Get("semester_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_semester_id", "semester_id must be a valid UUID")
			return
		}
		date, err := time.Parse(dateLayout, q.Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		courseID, err := uuid.Parse(q.Get("course_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_course_id", "course_id must be a valid UUID")
			return
		}
		classID, err := uuid.Parse(q.Get("class_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_class_id", "class_id must be a valid UUID")
			return
		}
		disciplineID, err := uuid.Parse(q.Get("discipline_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_discipline_id", "discipline_id must be a valid UUID")
			return
		}

		in := booking.ConflictQuery{
			SemesterID:   semesterID,
			Date:         date,
			CourseID:     courseID,
			ClassID:      classID,
			DisciplineID: disciplineID,
		}
		if raw := q.Get("exclude"); raw != "" {
			excludeID, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_exclude", "exclude must be a valid UUID")
				return
			}
			in.ExcludeID = excludeID
		}

		conflict, err := svc.CheckConflict(r.Context(), in)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		// Advisory only: always 200, the client decides whether to prompt.
		writeJSON(w, http.StatusOK, conflict)
	}
}
