package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusops/academic-scheduling/internal/catalog"
)

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return false
	}
	return true
}

// Courses

func listCoursesHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := svc.ListCourses(r.Context())
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		resp := make([]CourseResponse, 0, len(courses))
		for _, c := range courses {
			resp = append(resp, toCourseResponse(c))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createCourseHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CourseRequest
		if !decodeValid(w, r, &req) {
			return
		}
		course, err := svc.CreateCourse(r.Context(), req.Name, req.Code)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCourseResponse(*course))
	}
}

func updateCourseHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req CourseRequest
		if !decodeValid(w, r, &req) {
			return
		}
		course, err := svc.UpdateCourse(r.Context(), id, req.Name, req.Code)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCourseResponse(*course))
	}
}

func deleteCourseHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteCourse(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Semesters

func listSemestersHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, err := uuid.Parse(r.URL.Query().Get("course_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_course_id", "course_id must be a valid UUID")
			return
		}
		semesters, err := svc.ListSemesters(r.Context(), courseID)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		resp := make([]SemesterResponse, 0, len(semesters))
		for _, s := range semesters {
			resp = append(resp, toSemesterResponse(s))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createSemesterHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SemesterRequest
		if !decodeValid(w, r, &req) {
			return
		}
		courseID, _ := uuid.Parse(req.CourseID)
		semester, err := svc.CreateSemester(r.Context(), courseID, req.Number, req.Label)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSemesterResponse(*semester))
	}
}

func updateSemesterHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req SemesterRequest
		if !decodeValid(w, r, &req) {
			return
		}
		semester, err := svc.UpdateSemester(r.Context(), id, req.Number, req.Label)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSemesterResponse(*semester))
	}
}

func deleteSemesterHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteSemester(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Classes

func listClassesHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		semesterID, err := uuid.Parse(r.URL.Query().Get("semester_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_semester_id", "semester_id must be a valid UUID")
			return
		}
		classes, err := svc.ListClasses(r.Context(), semesterID)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		resp := make([]ClassResponse, 0, len(classes))
		for _, c := range classes {
			resp = append(resp, toClassResponse(c))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createClassHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClassRequest
		if !decodeValid(w, r, &req) {
			return
		}
		semesterID, _ := uuid.Parse(req.SemesterID)
		class, err := svc.CreateClass(r.Context(), semesterID, req.Name)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toClassResponse(*class))
	}
}

func updateClassHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req ClassRequest
		if !decodeValid(w, r, &req) {
			return
		}
		class, err := svc.UpdateClass(r.Context(), id, req.Name)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toClassResponse(*class))
	}
}

func deleteClassHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteClass(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Disciplines

func listDisciplinesHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		semesterID, err := uuid.Parse(r.URL.Query().Get("semester_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_semester_id", "semester_id must be a valid UUID")
			return
		}
		disciplines, err := svc.ListDisciplines(r.Context(), semesterID)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		resp := make([]DisciplineResponse, 0, len(disciplines))
		for _, d := range disciplines {
			resp = append(resp, toDisciplineResponse(d))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createDisciplineHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DisciplineRequest
		if !decodeValid(w, r, &req) {
			return
		}
		semesterID, _ := uuid.Parse(req.SemesterID)
		discipline, err := svc.CreateDiscipline(r.Context(), semesterID, req.Name, parseOptionalUUID(req.ProfessorID))
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDisciplineResponse(*discipline))
	}
}

func updateDisciplineHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req DisciplineRequest
		if !decodeValid(w, r, &req) {
			return
		}
		discipline, err := svc.UpdateDiscipline(r.Context(), id, req.Name, parseOptionalUUID(req.ProfessorID))
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDisciplineResponse(*discipline))
	}
}

func deleteDisciplineHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteDiscipline(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}

func handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrCourseNotFound):
		writeError(w, http.StatusNotFound, "course_not_found", err.Error())
	case errors.Is(err, catalog.ErrSemesterNotFound):
		writeError(w, http.StatusNotFound, "semester_not_found", err.Error())
	case errors.Is(err, catalog.ErrClassNotFound):
		writeError(w, http.StatusNotFound, "class_not_found", err.Error())
	case errors.Is(err, catalog.ErrDisciplineNotFound):
		writeError(w, http.StatusNotFound, "discipline_not_found", err.Error())
	case errors.Is(err, catalog.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, catalog.ErrCatalogMismatch):
		writeError(w, http.StatusUnprocessableEntity, "catalog_mismatch", err.Error())
	case errors.Is(err, catalog.ErrInUse):
		writeError(w, http.StatusConflict, "record_in_use", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
