package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"instructorhub/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testService(t *testing.T) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, err := New(&types.Config{ServerPort: 0, JWTSecret: testSecret}, logger, nil)
	require.NoError(t, err)
	return svc
}

func signToken(t *testing.T, subject string, roles []string, secret string) string {
	t.Helper()

	builder := jwt.NewBuilder().
		Subject(subject).
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour))
	if roles != nil {
		builder = builder.Claim("roles", roles)
	}

	token, err := builder.Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), []byte(secret)))
	require.NoError(t, err)
	return string(signed)
}

func TestRequireAuth(t *testing.T) {
	svc := testService(t)

	var gotUserID string
	var gotRoles []types.Role
	handler := svc.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(contextKeyUserID).(string)
		gotRoles, _ = r.Context().Value(contextKeyRoles).([]types.Role)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/onboarding", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", nil, "other-secret"))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", []string{"USER", "ADMIN"}, testSecret))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "user-1", gotUserID)
		assert.Equal(t, []types.Role{types.RoleUser, types.RoleAdmin}, gotRoles)
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := testService(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := svc.RequireAuth(svc.RequireAdmin(next))

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/onboardings", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "admin-1", []string{"ADMIN"}, testSecret))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/onboardings", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", []string{"USER"}, testSecret))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestWriteError(t *testing.T) {
	svc := testService(t)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: types.NewValidation("bad input"), status: http.StatusBadRequest},
		{name: "conflict", err: types.NewConflict("already exists"), status: http.StatusConflict},
		{name: "invalid state", err: types.NewInvalidState("wrong state"), status: http.StatusConflict},
		{name: "not found", err: types.ErrOnboardingNotFound, status: http.StatusNotFound},
		{name: "dependency", err: types.NewDependency("storage unavailable", nil), status: http.StatusBadGateway},
		{name: "untyped", err: io.ErrUnexpectedEOF, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			svc.writeError(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
