package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanCourse(row pgx.Row) (*Course, error) {
	var c Course
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanSemester(row pgx.Row) (*Semester, error) {
	var s Semester
	err := row.Scan(&s.ID, &s.CourseID, &s.Number, &s.Label, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSemesterNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanClass(row pgx.Row) (*Class, error) {
	var c Class
	err := row.Scan(&c.ID, &c.SemesterID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanDiscipline(row pgx.Row) (*Discipline, error) {
	var d Discipline
	var professorID *uuid.UUID
	err := row.Scan(&d.ID, &d.SemesterID, &d.Name, &professorID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDisciplineNotFound
		}
		return nil, err
	}
	d.ProfessorID = professorID
	return &d, nil
}

func mapDeleteErr(err error, notFound error, tag pgconn.CommandTag) error {
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

// Courses

func (r *PgRepository) GetCourse(ctx context.Context, id uuid.UUID) (*Course, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, code, created_at, updated_at
		FROM courses
		WHERE id = $1
	`, id)
	return scanCourse(row)
}

func (r *PgRepository) ListCourses(ctx context.Context) ([]Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, code, created_at, updated_at
		FROM courses
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *PgRepository) InsertCourse(ctx context.Context, c Course) (*Course, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (id, name, code, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, name, code, created_at, updated_at
	`, c.ID, c.Name, c.Code)
	return scanCourse(row)
}

func (r *PgRepository) UpdateCourse(ctx context.Context, c Course) (*Course, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE courses
		SET name = $2, code = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, name, code, created_at, updated_at
	`, c.ID, c.Name, c.Code)
	return scanCourse(row)
}

func (r *PgRepository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return mapDeleteErr(err, ErrCourseNotFound, tag)
}

// Semesters

func (r *PgRepository) GetSemester(ctx context.Context, id uuid.UUID) (*Semester, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, course_id, number, label, created_at, updated_at
		FROM semesters
		WHERE id = $1
	`, id)
	return scanSemester(row)
}

func (r *PgRepository) ListSemesters(ctx context.Context, courseID uuid.UUID) ([]Semester, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, course_id, number, label, created_at, updated_at
		FROM semesters
		WHERE course_id = $1
		ORDER BY number
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Semester
	for rows.Next() {
		s, err := scanSemester(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *PgRepository) InsertSemester(ctx context.Context, s Semester) (*Semester, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO semesters (id, course_id, number, label, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, course_id, number, label, created_at, updated_at
	`, s.ID, s.CourseID, s.Number, s.Label)
	return scanSemester(row)
}

func (r *PgRepository) UpdateSemester(ctx context.Context, s Semester) (*Semester, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE semesters
		SET number = $2, label = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, course_id, number, label, created_at, updated_at
	`, s.ID, s.Number, s.Label)
	return scanSemester(row)
}

func (r *PgRepository) DeleteSemester(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	return mapDeleteErr(err, ErrSemesterNotFound, tag)
}

// Classes

func (r *PgRepository) GetClass(ctx context.Context, id uuid.UUID) (*Class, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, semester_id, name, created_at, updated_at
		FROM classes
		WHERE id = $1
	`, id)
	return scanClass(row)
}

func (r *PgRepository) ListClasses(ctx context.Context, semesterID uuid.UUID) ([]Class, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, semester_id, name, created_at, updated_at
		FROM classes
		WHERE semester_id = $1
		ORDER BY name
	`, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *PgRepository) InsertClass(ctx context.Context, c Class) (*Class, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO classes (id, semester_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, semester_id, name, created_at, updated_at
	`, c.ID, c.SemesterID, c.Name)
	return scanClass(row)
}

func (r *PgRepository) UpdateClass(ctx context.Context, c Class) (*Class, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE classes
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, semester_id, name, created_at, updated_at
	`, c.ID, c.Name)
	return scanClass(row)
}

func (r *PgRepository) DeleteClass(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return mapDeleteErr(err, ErrClassNotFound, tag)
}

// Disciplines

func (r *PgRepository) GetDiscipline(ctx context.Context, id uuid.UUID) (*Discipline, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, semester_id, name, professor_id, created_at, updated_at
		FROM disciplines
		WHERE id = $1
	`, id)
	return scanDiscipline(row)
}

func (r *PgRepository) ListDisciplines(ctx context.Context, semesterID uuid.UUID) ([]Discipline, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, semester_id, name, professor_id, created_at, updated_at
		FROM disciplines
		WHERE semester_id = $1
		ORDER BY name
	`, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Discipline
	for rows.Next() {
		d, err := scanDiscipline(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

func (r *PgRepository) InsertDiscipline(ctx context.Context, d Discipline) (*Discipline, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO disciplines (id, semester_id, name, professor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, semester_id, name, professor_id, created_at, updated_at
	`, d.ID, d.SemesterID, d.Name, d.ProfessorID)
	return scanDiscipline(row)
}

func (r *PgRepository) UpdateDiscipline(ctx context.Context, d Discipline) (*Discipline, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE disciplines
		SET name = $2, professor_id = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, semester_id, name, professor_id, created_at, updated_at
	`, d.ID, d.Name, d.ProfessorID)
	return scanDiscipline(row)
}

func (r *PgRepository) DeleteDiscipline(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM disciplines WHERE id = $1`, id)
	return mapDeleteErr(err, ErrDisciplineNotFound, tag)
}
