package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID        uuid.UUID
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Semester struct {
	ID        uuid.UUID
	CourseID  uuid.UUID
	Number    int
	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Class struct {
	ID         uuid.UUID
	SemesterID uuid.UUID
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Discipline struct {
	ID          uuid.UUID
	SemesterID  uuid.UUID
	Name        string
	ProfessorID *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
