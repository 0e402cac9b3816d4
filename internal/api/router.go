package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campusops/academic-scheduling/internal/auth"
	"github.com/campusops/academic-scheduling/internal/booking"
	"github.com/campusops/academic-scheduling/internal/catalog"
)

type RouterConfig struct {
	Auth    *auth.Service
	Catalog *catalog.Service
	Booking *booking.Service
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Logger  *zap.Logger
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(NewLoggingMiddleware(logger))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Post("/auth/login", loginHandler(cfg.Auth))

	// Everything else requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(Authenticate(cfg.Auth))

		// User administration
		r.Route("/users", func(r chi.Router) {
			r.Use(RequireRole(auth.RoleAdmin))
			r.Get("/", listUsersHandler(cfg.Auth))
			r.Post("/", createUserHandler(cfg.Auth))
			r.Put("/{id}/roles", assignRolesHandler(cfg.Auth))
		})

		// Academic catalog: reads for everyone, writes for secretarial roles.
		manage := RequireRole(auth.RoleSecretary, auth.RoleDirector)

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", listCoursesHandler(cfg.Catalog))
			r.With(manage).Post("/", createCourseHandler(cfg.Catalog))
			r.With(manage).Put("/{id}", updateCourseHandler(cfg.Catalog))
			r.With(manage).Delete("/{id}", deleteCourseHandler(cfg.Catalog))
		})

		r.Route("/semesters", func(r chi.Router) {
			r.Get("/", listSemestersHandler(cfg.Catalog))
			r.With(manage).Post("/", createSemesterHandler(cfg.Catalog))
			r.With(manage).Put("/{id}", updateSemesterHandler(cfg.Catalog))
			r.With(manage).Delete("/{id}", deleteSemesterHandler(cfg.Catalog))
			r.Get("/{id}/bookings", listSemesterBookingsHandler(cfg.Booking, logger))
		})

		r.Route("/classes", func(r chi.Router) {
			r.Get("/", listClassesHandler(cfg.Catalog))
			r.With(manage).Post("/", createClassHandler(cfg.Catalog))
			r.With(manage).Put("/{id}", updateClassHandler(cfg.Catalog))
			r.With(manage).Delete("/{id}", deleteClassHandler(cfg.Catalog))
		})

		r.Route("/disciplines", func(r chi.Router) {
			r.Get("/", listDisciplinesHandler(cfg.Catalog))
			r.With(manage).Post("/", createDisciplineHandler(cfg.Catalog))
			r.With(manage).Put("/{id}", updateDisciplineHandler(cfg.Catalog))
			r.With(manage).Delete("/{id}", deleteDisciplineHandler(cfg.Catalog))
		})

		// Bookings
		book := RequireRole(auth.RoleStudent, auth.RoleProfessor, auth.RoleSecretary)

		r.Route("/bookings", func(r chi.Router) {
			r.With(book).Post("/", createBookingHandler(cfg.Booking, logger))
			r.Get("/conflict-check", conflictCheckHandler(cfg.Booking))
			r.Get("/{id}", getBookingHandler(cfg.Booking, logger))
			r.With(book).Put("/{id}", updateBookingHandler(cfg.Booking, logger))
			r.With(book).Delete("/{id}", deleteBookingHandler(cfg.Booking))
		})

		r.Get("/availability", availabilityHandler(cfg.Booking))
		r.Get("/availability/capacity", capacityHandler(cfg.Booking))
	})

	return r
}
