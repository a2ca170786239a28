package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"instructorhub/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyRoles  contextKey = "roles"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth verifies the bearer token and adds the caller's id and roles to
// the request context. Token issuance lives elsewhere; this service only
// verifies.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeErrorMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		rawToken := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(
			[]byte(rawToken),
			jwt.WithKey(jwa.HS256(), []byte(s.config.JWTSecret)),
			jwt.WithValidate(true),
		)
		if err != nil {
			s.logger.WithError(err).Debug("failed to parse JWT")
			s.writeErrorMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, ok := token.Subject()
		if !ok || userID == "" {
			s.logger.Error("no user ID in JWT subject claim")
			s.writeErrorMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		var claimRoles []interface{}
		if err := token.Get("roles", &claimRoles); err != nil {
			s.logger.WithError(err).Debug("no roles claim in JWT")
		}
		roles := make([]types.Role, 0, len(claimRoles))
		for _, role := range claimRoles {
			if name, ok := role.(string); ok {
				roles = append(roles, types.Role(name))
			}
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyUserID, userID)
		ctx = context.WithValue(ctx, contextKeyRoles, roles)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roles, _ := r.Context().Value(contextKeyRoles).([]types.Role)
		for _, role := range roles {
			if role == types.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
		}

		s.writeErrorMessage(w, http.StatusForbidden, "admin role required")
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
