package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vr-therapy-platform/config"
	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	snapshot usecase.SessionSnapshot
}

func (s *stubSessions) Snapshot() usecase.SessionSnapshot {
	return s.snapshot
}

func liveSession(id string, role entity.Role) usecase.SessionSnapshot {
	return usecase.SessionSnapshot{
		State:           usecase.SessionAuthenticatedTherapist,
		IsAuthenticated: true,
		Role:            role,
		SessionID:       id,
	}
}

func TestAuthenticate(t *testing.T) {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	token, _, err := jwtService.GenerateAccessToken("T001", string(entity.RoleTherapist), "session-1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		session usecase.SessionSnapshot
		header  string
		code    int
	}{
		{"loading", usecase.SessionSnapshot{State: usecase.SessionLoading, Loading: true}, "Bearer " + token, http.StatusServiceUnavailable},
		{"missing header", liveSession("session-1", entity.RoleTherapist), "", http.StatusUnauthorized},
		{"malformed header", liveSession("session-1", entity.RoleTherapist), token, http.StatusUnauthorized},
		{"invalid token", liveSession("session-1", entity.RoleTherapist), "Bearer nope", http.StatusUnauthorized},
		{"logged out", usecase.SessionSnapshot{State: usecase.SessionUnauthenticated}, "Bearer " + token, http.StatusUnauthorized},
		{"replaced session", liveSession("session-2", entity.RoleTherapist), "Bearer " + token, http.StatusUnauthorized},
		{"live session", liveSession("session-1", entity.RoleTherapist), "Bearer " + token, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(jwtService, &stubSessions{snapshot: tt.session})

			var subject string
			var actor usecase.Actor
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject, _ = GetSubjectFromContext(r.Context())
				actor, _ = usecase.ActorFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusNoContent {
				assert.Equal(t, "T001", subject)
				assert.Equal(t, usecase.Actor{ID: "T001", Role: entity.RoleTherapist}, actor)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name string
		role any
		code int
	}{
		{"no role", nil, http.StatusUnauthorized},
		{"guardian", entity.RoleGuardian, http.StatusForbidden},
		{"therapist", entity.RoleTherapist, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), RoleKey, tt.role))
			}
			rec := httptest.NewRecorder()
			RequireTherapist(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://clinic.example")
		rec := httptest.NewRecorder()
		NewCORSMiddleware("https://admin.example", "https://clinic.example").Handle(next).ServeHTTP(rec, req)

		assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("preflight stops the chain", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		rec := httptest.NewRecorder()
		NewCORSMiddleware().Handle(next).ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
