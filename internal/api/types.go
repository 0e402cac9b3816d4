package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/academic-scheduling/internal/auth"
	"github.com/campusops/academic-scheduling/internal/booking"
	"github.com/campusops/academic-scheduling/internal/catalog"
	"github.com/campusops/academic-scheduling/internal/schedule"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// Auth

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=admin director secretary professor student"`
}

type AssignRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=admin director secretary professor student"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Roles []string  `json:"roles"`
}

func toUserResponse(u auth.User) UserResponse {
	roles := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = string(r)
	}
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Roles: roles,
	}
}

// Catalog

type CourseRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code"`
}

type CourseResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`
}

func toCourseResponse(c catalog.Course) CourseResponse {
	return CourseResponse{ID: c.ID, Name: c.Name, Code: c.Code}
}

type SemesterRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	Number   int    `json:"number" validate:"required,min=1"`
	Label    string `json:"label"`
}

type SemesterResponse struct {
	ID       uuid.UUID `json:"id"`
	CourseID uuid.UUID `json:"course_id"`
	Number   int       `json:"number"`
	Label    string    `json:"label,omitempty"`
}

func toSemesterResponse(s catalog.Semester) SemesterResponse {
	return SemesterResponse{ID: s.ID, CourseID: s.CourseID, Number: s.Number, Label: s.Label}
}

type ClassRequest struct {
	SemesterID string `json:"semester_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"required"`
}

type ClassResponse struct {
	ID         uuid.UUID `json:"id"`
	SemesterID uuid.UUID `json:"semester_id"`
	Name       string    `json:"name"`
}

func toClassResponse(c catalog.Class) ClassResponse {
	return ClassResponse{ID: c.ID, SemesterID: c.SemesterID, Name: c.Name}
}

type DisciplineRequest struct {
	SemesterID  string  `json:"semester_id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required"`
	ProfessorID *string `json:"professor_id" validate:"omitempty,uuid"`
}

type DisciplineResponse struct {
	ID          uuid.UUID  `json:"id"`
	SemesterID  uuid.UUID  `json:"semester_id"`
	Name        string     `json:"name"`
	ProfessorID *uuid.UUID `json:"professor_id,omitempty"`
}

func toDisciplineResponse(d catalog.Discipline) DisciplineResponse {
	return DisciplineResponse{ID: d.ID, SemesterID: d.SemesterID, Name: d.Name, ProfessorID: d.ProfessorID}
}

// Bookings

type CreateBookingRequest struct {
	SemesterID   string   `json:"semester_id" validate:"required,uuid"`
	CourseID     string   `json:"course_id" validate:"required,uuid"`
	ClassID      string   `json:"class_id" validate:"required,uuid"`
	DisciplineID string   `json:"discipline_id" validate:"required,uuid"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlots    []string `json:"time_slots" validate:"required,min=1"`
}

type UpdateBookingRequest struct {
	ClassID      string   `json:"class_id" validate:"omitempty,uuid"`
	DisciplineID string   `json:"discipline_id" validate:"omitempty,uuid"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlots    []string `json:"time_slots" validate:"required,min=1"`
}

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	SemesterID   uuid.UUID `json:"semester_id"`
	CourseID     uuid.UUID `json:"course_id"`
	ClassID      uuid.UUID `json:"class_id"`
	DisciplineID uuid.UUID `json:"discipline_id"`
	BookedBy     uuid.UUID `json:"booked_by"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	TimeSlots    []string  `json:"time_slots"`
	CreatedAt    time.Time `json:"created_at"`
}

func toBookingResponse(b booking.Booking, logger *zap.Logger) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		SemesterID:   b.SemesterID,
		CourseID:     b.CourseID,
		ClassID:      b.ClassID,
		DisciplineID: b.DisciplineID,
		BookedBy:     b.BookedBy,
		Date:         b.Day().Format(dateLayout),
		StartTime:    b.StartTime(),
		EndTime:      b.EndTime(),
		TimeSlots:    schedule.OccupiedSlots(b.Details, b.StartTime(), b.EndTime(), logger),
		CreatedAt:    b.CreatedAt,
	}
}

// Availability

type AvailabilityResponse struct {
	Date    string                        `json:"date,omitempty"`
	Periods []schedule.PeriodAvailability `json:"periods"`
}

type CapacityResponse struct {
	Fits     bool `json:"fits"`
	Required int  `json:"required"`
}
