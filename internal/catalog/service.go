package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput    = errors.New("invalid catalog input")
	ErrCatalogMismatch = errors.New("catalog references do not belong together")
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Courses

func (s *Service) CreateCourse(ctx context.Context, name, code string) (*Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: course name required", ErrInvalidInput)
	}
	created, err := s.repo.InsertCourse(ctx, Course{
		ID:   uuid.New(),
		Name: name,
		Code: strings.TrimSpace(code),
	})
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.logger.Info("course created", zap.String("course_id", created.ID.String()))
	return created, nil
}

func (s *Service) UpdateCourse(ctx context.Context, id uuid.UUID, name, code string) (*Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: course name required", ErrInvalidInput)
	}
	return s.repo.UpdateCourse(ctx, Course{ID: id, Name: name, Code: strings.TrimSpace(code)})
}

func (s *Service) GetCourse(ctx context.Context, id uuid.UUID) (*Course, error) {
	return s.repo.GetCourse(ctx, id)
}

func (s *Service) ListCourses(ctx context.Context) ([]Course, error) {
	return s.repo.ListCourses(ctx)
}

func (s *Service) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCourse(ctx, id)
}

// Semesters

func (s *Service) CreateSemester(ctx context.Context, courseID uuid.UUID, number int, label string) (*Semester, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: semester number must be positive", ErrInvalidInput)
	}
	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	created, err := s.repo.InsertSemester(ctx, Semester{
		ID:       uuid.New(),
		CourseID: courseID,
		Number:   number,
		Label:    strings.TrimSpace(label),
	})
	if err != nil {
		return nil, fmt.Errorf("create semester: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateSemester(ctx context.Context, id uuid.UUID, number int, label string) (*Semester, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: semester number must be positive", ErrInvalidInput)
	}
	return s.repo.UpdateSemester(ctx, Semester{ID: id, Number: number, Label: strings.TrimSpace(label)})
}

func (s *Service) GetSemester(ctx context.Context, id uuid.UUID) (*Semester, error) {
	return s.repo.GetSemester(ctx, id)
}

func (s *Service) ListSemesters(ctx context.Context, courseID uuid.UUID) ([]Semester, error) {
	return s.repo.ListSemesters(ctx, courseID)
}

func (s *Service) DeleteSemester(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSemester(ctx, id)
}

// Classes

func (s *Service) CreateClass(ctx context.Context, semesterID uuid.UUID, name string) (*Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: class name required", ErrInvalidInput)
	}
	if _, err := s.repo.GetSemester(ctx, semesterID); err != nil {
		return nil, err
	}
	created, err := s.repo.InsertClass(ctx, Class{
		ID:         uuid.New(),
		SemesterID: semesterID,
		Name:       name,
	})
	if err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateClass(ctx context.Context, id uuid.UUID, name string) (*Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: class name required", ErrInvalidInput)
	}
	return s.repo.UpdateClass(ctx, Class{ID: id, Name: name})
}

func (s *Service) GetClass(ctx context.Context, id uuid.UUID) (*Class, error) {
	return s.repo.GetClass(ctx, id)
}

func (s *Service) ListClasses(ctx context.Context, semesterID uuid.UUID) ([]Class, error) {
	return s.repo.ListClasses(ctx, semesterID)
}

func (s *Service) DeleteClass(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClass(ctx, id)
}

// Disciplines

func (s *Service) CreateDiscipline(ctx context.Context, semesterID uuid.UUID, name string, professorID *uuid.UUID) (*Discipline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: discipline name required", ErrInvalidInput)
	}
	if _, err := s.repo.GetSemester(ctx, semesterID); err != nil {
		return nil, err
	}
	created, err := s.repo.InsertDiscipline(ctx, Discipline{
		ID:          uuid.New(),
		SemesterID:  semesterID,
		Name:        name,
		ProfessorID: professorID,
	})
	if err != nil {
		return nil, fmt.Errorf("create discipline: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateDiscipline(ctx context.Context, id uuid.UUID, name string, professorID *uuid.UUID) (*Discipline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: discipline name required", ErrInvalidInput)
	}
	return s.repo.UpdateDiscipline(ctx, Discipline{ID: id, Name: name, ProfessorID: professorID})
}

func (s *Service) GetDiscipline(ctx context.Context, id uuid.UUID) (*Discipline, error) {
	return s.repo.GetDiscipline(ctx, id)
}

func (s *Service) ListDisciplines(ctx context.Context, semesterID uuid.UUID) ([]Discipline, error) {
	return s.repo.ListDisciplines(ctx, semesterID)
}

func (s *Service) DeleteDiscipline(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDiscipline(ctx, id)
}

// ValidateBookingRefs checks that a booking's catalog references exist and
// belong together: the semester under the course, the class and discipline
// under the semester.
func (s *Service) ValidateBookingRefs(ctx context.Context, courseID, semesterID, classID, disciplineID uuid.UUID) error {
	semester, err := s.repo.GetSemester(ctx, semesterID)
	if err != nil {
		return err
	}
	if semester.CourseID != courseID {
		return fmt.Errorf("%w: semester %s does not belong to course %s", ErrCatalogMismatch, semesterID, courseID)
	}

	class, err := s.repo.GetClass(ctx, classID)
	if err != nil {
		return err
	}
	if class.SemesterID != semesterID {
		return fmt.Errorf("%w: class %s does not belong to semester %s", ErrCatalogMismatch, classID, semesterID)
	}

	discipline, err := s.repo.GetDiscipline(ctx, disciplineID)
	if err != nil {
		return err
	}
	if discipline.SemesterID != semesterID {
		return fmt.Errorf("%w: discipline %s does not belong to semester %s", ErrCatalogMismatch, disciplineID, semesterID)
	}

	return nil
}
