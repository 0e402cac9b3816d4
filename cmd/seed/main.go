// Seed fills a development database with users, a small academic catalog
// and a few bookings so the API has something to serve out of the box.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/academic-scheduling/internal/auth"
	"github.com/campusops/academic-scheduling/internal/booking"
	"github.com/campusops/academic-scheduling/internal/catalog"
	"github.com/campusops/academic-scheduling/internal/config"
	"github.com/campusops/academic-scheduling/internal/db"
	"github.com/campusops/academic-scheduling/internal/logging"
	redisclient "github.com/campusops/academic-scheduling/internal/redis"
	"github.com/campusops/academic-scheduling/internal/schedule"
	"github.com/campusops/academic-scheduling/migrations"
)

const (
	studentCount       = 20
	coursesCount       = 3
	semestersPerCourse = 2
	classesPerSemester = 2
	seedPassword       = "changeme123"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.NewService(auth.NewPgRepository(pool), tokens, logger)
	catalogSvc := catalog.NewService(catalog.NewPgRepository(pool), logger)
	locker := redisclient.NewRedisBookingLocker(rdb, cfg.LockTTL)
	bookingSvc := booking.NewService(booking.NewPgRepository(pool), catalogSvc, locker, logger)

	gofakeit.Seed(42)

	professors, students := seedUsers(ctx, authSvc, logger)
	semesters, classes, disciplines := seedCatalog(ctx, catalogSvc, professors, logger)
	seedBookings(ctx, bookingSvc, semesters, classes, disciplines, students, logger)

	logger.Info("seed complete")
}

func seedUsers(ctx context.Context, svc *auth.Service, logger *zap.Logger) (professors, students []uuid.UUID) {
	fixed := []auth.CreateUserInput{
		{Name: "Admin", Email: "admin@campus.edu", Password: seedPassword, Roles: []auth.Role{auth.RoleAdmin}},
		{Name: "Scheduling Office", Email: "secretary@campus.edu", Password: seedPassword, Roles: []auth.Role{auth.RoleSecretary}},
		{Name: "Program Director", Email: "director@campus.edu", Password: seedPassword, Roles: []auth.Role{auth.RoleDirector}},
	}
	for _, in := range fixed {
		mustCreateUser(ctx, svc, in, logger)
	}

	for i := 0; i < 3; i++ {
		name := gofakeit.Name()
		u := mustCreateUser(ctx, svc, auth.CreateUserInput{
			Name:     name,
			Email:    seedEmail(name),
			Password: seedPassword,
			Roles:    []auth.Role{auth.RoleProfessor},
		}, logger)
		professors = append(professors, u.ID)
	}

	for i := 0; i < studentCount; i++ {
		name := gofakeit.Name()
		u := mustCreateUser(ctx, svc, auth.CreateUserInput{
			Name:     name,
			Email:    fmt.Sprintf("%d.%s", i, seedEmail(name)),
			Password: seedPassword,
			Roles:    []auth.Role{auth.RoleStudent},
		}, logger)
		students = append(students, u.ID)
	}

	logger.Info("users seeded",
		zap.Int("professors", len(professors)),
		zap.Int("students", len(students)))
	return professors, students
}

type seededSemester struct {
	ID       uuid.UUID
	CourseID uuid.UUID
}

func seedCatalog(ctx context.Context, svc *catalog.Service, professors []uuid.UUID, logger *zap.Logger) (
	semesters []seededSemester, classes map[uuid.UUID][]uuid.UUID, disciplines map[uuid.UUID]uuid.UUID,
) {
	classes = make(map[uuid.UUID][]uuid.UUID)
	disciplines = make(map[uuid.UUID]uuid.UUID)

	courseNames := []string{"Computer Science", "Information Systems", "Software Engineering"}
	for i := 0; i < coursesCount; i++ {
		course, err := svc.CreateCourse(ctx, courseNames[i], fmt.Sprintf("C%03d", i+1))
		if err != nil {
			logger.Fatal("seed course", zap.Error(err))
		}
		for n := 1; n <= semestersPerCourse; n++ {
			sem, err := svc.CreateSemester(ctx, course.ID, n, fmt.Sprintf("%d/%d", n, semestersPerCourse))
			if err != nil {
				logger.Fatal("seed semester", zap.Error(err))
			}
			semesters = append(semesters, seededSemester{ID: sem.ID, CourseID: course.ID})

			for c := 0; c < classesPerSemester; c++ {
				cls, err := svc.CreateClass(ctx, sem.ID, fmt.Sprintf("%s-%d%c", course.Code, n, 'A'+c))
				if err != nil {
					logger.Fatal("seed class", zap.Error(err))
				}
				classes[sem.ID] = append(classes[sem.ID], cls.ID)
			}

			prof := professors[gofakeit.Number(0, len(professors)-1)]
			disc, err := svc.CreateDiscipline(ctx, sem.ID, gofakeit.HackerNoun()+" Fundamentals", &prof)
			if err != nil {
				logger.Fatal("seed discipline", zap.Error(err))
			}
			disciplines[sem.ID] = disc.ID
		}
	}

	logger.Info("catalog seeded", zap.Int("semesters", len(semesters)))
	return semesters, classes, disciplines
}

// bookingTarget pairs a class with its semester and discipline for seeding.
type bookingTarget struct {
	Semester     seededSemester
	ClassID      uuid.UUID
	DisciplineID uuid.UUID
}

// bookingTargets expands the seeded catalog into one target per class, so
// every class gets a booking rather than just the last one created per
// semester.
func bookingTargets(semesters []seededSemester, classes map[uuid.UUID][]uuid.UUID, disciplines map[uuid.UUID]uuid.UUID) []bookingTarget {
	var targets []bookingTarget
	for _, sem := range semesters {
		for _, classID := range classes[sem.ID] {
			targets = append(targets, bookingTarget{
				Semester:     sem,
				ClassID:      classID,
				DisciplineID: disciplines[sem.ID],
			})
		}
	}
	return targets
}

func seedBookings(ctx context.Context, svc *booking.Service, semesters []seededSemester,
	classes map[uuid.UUID][]uuid.UUID, disciplines map[uuid.UUID]uuid.UUID, students []uuid.UUID, logger *zap.Logger,
) {
	// One booking per seeded class, on consecutive upcoming weekdays, each
	// taking the first two morning slots. Days advance per booking because
	// bookings within a semester may not overlap.
	day := nextWeekday(time.Now().UTC().AddDate(0, 0, 1))
	slots := schedule.SlotsFor(schedule.PeriodMorning)[:2]

	created := 0
	for i, target := range bookingTargets(semesters, classes, disciplines) {
		_, err := svc.Create(ctx, booking.CreateInput{
			SemesterID:   target.Semester.ID,
			CourseID:     target.Semester.CourseID,
			ClassID:      target.ClassID,
			DisciplineID: target.DisciplineID,
			BookedBy:     students[i%len(students)],
			Date:         day,
			TimeSlots:    slots,
		})
		if err != nil {
			logger.Warn("seed booking skipped", zap.Error(err))
			continue
		}
		created++
		day = nextWeekday(day.AddDate(0, 0, 1))
	}

	logger.Info("bookings seeded", zap.Int("created", created))
}

func mustCreateUser(ctx context.Context, svc *auth.Service, in auth.CreateUserInput, logger *zap.Logger) *auth.User {
	u, err := svc.CreateUser(ctx, in)
	if err != nil {
		logger.Fatal("seed user", zap.String("email", in.Email), zap.Error(err))
	}
	return u
}

func seedEmail(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@campus.edu"
}

func nextWeekday(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
