package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/academic-scheduling/internal/auth"
)

type stubValidator struct {
	claims auth.Claims
	err    error
}

func (s stubValidator) ValidateToken(token string) (auth.Claims, error) {
	if s.err != nil {
		return auth.Claims{}, s.err
	}
	return s.claims, nil
}

func okHandler(t *testing.T, wantUser uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUser, claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	h := Authenticate(stubValidator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_token")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	h := Authenticate(stubValidator{err: auth.ErrInvalidToken})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_token")
}

func TestAuthenticateStoresClaims(t *testing.T) {
	userID := uuid.New()
	v := stubValidator{claims: auth.Claims{UserID: userID, Roles: []auth.Role{auth.RoleStudent}}}

	h := Authenticate(v)(okHandler(t, userID))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	userID := uuid.New()
	v := stubValidator{claims: auth.Claims{UserID: userID, Roles: []auth.Role{auth.RoleStudent}}}

	allowed := Authenticate(v)(RequireRole(auth.RoleStudent, auth.RoleProfessor)(okHandler(t, userID)))
	denied := Authenticate(v)(RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})))

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer good")

	rec := httptest.NewRecorder()
	allowed.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	// Generated when absent.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	// Propagated when supplied.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestParseAvailabilityQuery(t *testing.T) {
	semester := uuid.New()

	t.Run("rejects bad semester id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/availability?semester_id=nope", nil)
		rec := httptest.NewRecorder()
		_, ok := parseAvailabilityQuery(rec, req)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects unknown period", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/availability?semester_id="+semester.String()+"&periods=night", nil)
		rec := httptest.NewRecorder()
		_, ok := parseAvailabilityQuery(rec, req)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("parses full query", func(t *testing.T) {
		exclude := uuid.New()
		req := httptest.NewRequest(http.MethodGet,
			"/availability?semester_id="+semester.String()+
				"&date=2026-09-21&periods=morning,evening&exclude="+exclude.String(), nil)
		rec := httptest.NewRecorder()
		q, ok := parseAvailabilityQuery(rec, req)
		require.True(t, ok)
		assert.Equal(t, semester, q.SemesterID)
		assert.Equal(t, "2026-09-21", q.Date.Format("2006-01-02"))
		assert.Len(t, q.Periods, 2)
		assert.Equal(t, exclude, q.ExcludeID)
	})

	t.Run("date optional", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/availability?semester_id="+semester.String(), nil)
		rec := httptest.NewRecorder()
		q, ok := parseAvailabilityQuery(rec, req)
		require.True(t, ok)
		assert.True(t, q.Date.IsZero())
	})
}
