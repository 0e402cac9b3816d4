package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrSemesterNotFound   = errors.New("semester not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrDisciplineNotFound = errors.New("discipline not found")
	ErrInUse              = errors.New("record is referenced by existing bookings")
)

// Repository contains all DB interactions needed by the catalog service.
type Repository interface {
	GetCourse(ctx context.Context, id uuid.UUID) (*Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	InsertCourse(ctx context.Context, c Course) (*Course, error)
	UpdateCourse(ctx context.Context, c Course) (*Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	GetSemester(ctx context.Context, id uuid.UUID) (*Semester, error)
	ListSemesters(ctx context.Context, courseID uuid.UUID) ([]Semester, error)
	InsertSemester(ctx context.Context, s Semester) (*Semester, error)
	UpdateSemester(ctx context.Context, s Semester) (*Semester, error)
	DeleteSemester(ctx context.Context, id uuid.UUID) error

	GetClass(ctx context.Context, id uuid.UUID) (*Class, error)
	ListClasses(ctx context.Context, semesterID uuid.UUID) ([]Class, error)
	InsertClass(ctx context.Context, c Class) (*Class, error)
	UpdateClass(ctx context.Context, c Class) (*Class, error)
	DeleteClass(ctx context.Context, id uuid.UUID) error

	GetDiscipline(ctx context.Context, id uuid.UUID) (*Discipline, error)
	ListDisciplines(ctx context.Context, semesterID uuid.UUID) ([]Discipline, error)
	InsertDiscipline(ctx context.Context, d Discipline) (*Discipline, error)
	UpdateDiscipline(ctx context.Context, d Discipline) (*Discipline, error)
	DeleteDiscipline(ctx context.Context, id uuid.UUID) error
}
