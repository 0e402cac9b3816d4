package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/academic-scheduling/internal/booking"
	"github.com/campusops/academic-scheduling/internal/catalog"
	redisclient "github.com/campusops/academic-scheduling/internal/redis"
)

func createBookingHandler(svc *booking.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBookingRequest
		if !decodeValid(w, r, &req) {
			return
		}

		claims, ok := ClaimsFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		date, _ := time.Parse(dateLayout, req.Date)
		semesterID, _ := uuid.Parse(req.SemesterID)
		courseID, _ := uuid.Parse(req.CourseID)
		classID, _ := uuid.Parse(req.ClassID)
		disciplineID, _ := uuid.Parse(req.DisciplineID)

		created, err := svc.Create(r.Context(), booking.CreateInput{
			SemesterID:   semesterID,
			CourseID:     courseID,
			ClassID:      classID,
			DisciplineID: disciplineID,
			BookedBy:     claims.UserID,
			Date:         date,
			TimeSlots:    req.TimeSlots,
		})
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toBookingResponse(*created, logger))
	}
}

func updateBookingHandler(svc *booking.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req UpdateBookingRequest
		if !decodeValid(w, r, &req) {
			return
		}

		date, _ := time.Parse(dateLayout, req.Date)

		in := booking.UpdateInput{
			Date:      date,
			TimeSlots: req.TimeSlots,
		}
		if req.ClassID != "" {
			in.ClassID, _ = uuid.Parse(req.ClassID)
		}
		if req.DisciplineID != "" {
			in.DisciplineID, _ = uuid.Parse(req.DisciplineID)
		}

		updated, err := svc.Update(r.Context(), id, in)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBookingResponse(*updated, logger))
	}
}

func deleteBookingHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			handleBookingError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getBookingHandler(svc *booking.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		b, err := svc.Get(r.Context(), id)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(*b, logger))
	}
}

func listSemesterBookingsHandler(svc *booking.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		bookings, err := svc.ListBySemester(r.Context(), id)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		resp := make([]BookingResponse, 0, len(bookings))
		for _, b := range bookings {
			resp = append(resp, toBookingResponse(b, logger))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "booking_not_found", err.Error())
	case errors.Is(err, booking.ErrInvalidSlots):
		writeError(w, http.StatusBadRequest, "invalid_slots", err.Error())
	case errors.Is(err, booking.ErrTimeOverlap):
		writeError(w, http.StatusConflict, "time_overlap", err.Error())
	case errors.Is(err, booking.ErrDayBeingBooked),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "day_being_booked", "this day is currently being booked, please retry shortly")
	case errors.Is(err, catalog.ErrCatalogMismatch):
		writeError(w, http.StatusUnprocessableEntity, "catalog_mismatch", err.Error())
	case errors.Is(err, catalog.ErrCourseNotFound),
		errors.Is(err, catalog.ErrSemesterNotFound),
		errors.Is(err, catalog.ErrClassNotFound),
		errors.Is(err, catalog.ErrDisciplineNotFound):
		writeError(w, http.StatusUnprocessableEntity, "unknown_catalog_reference", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
