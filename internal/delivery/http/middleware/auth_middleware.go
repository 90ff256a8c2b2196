package middleware

import (
	"context"
	"net/http"
	"strings"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/jwt"
	"vr-therapy-platform/pkg/response"
)

type contextKey string

const (
	SubjectKey   contextKey = "subject"
	RoleKey      contextKey = "role"
	SessionIDKey contextKey = "session_id"
	TokenIDKey   contextKey = "token_id"
)

// SessionSource reports the live authentication session
type SessionSource interface {
	Snapshot() usecase.SessionSnapshot
}

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	sessions   SessionSource
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessions SessionSource) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Authenticate accepts a bearer token only while the session it was issued
// for is still the live session. Logging out revokes every token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := m.sessions.Snapshot()
		if session.Loading {
			response.ServiceUnavailable(w, "Session is still loading")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if !session.IsAuthenticated || claims.SessionID != session.SessionID {
			response.Unauthorized(w, "Session has ended")
			return
		}

		role := entity.Role(claims.Role)
		ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
		ctx = context.WithValue(ctx, RoleKey, role)
		ctx = context.WithValue(ctx, SessionIDKey, claims.SessionID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.ID)
		ctx = usecase.WithActor(ctx, usecase.Actor{ID: claims.Subject, Role: role})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubjectFromContext returns the therapist id, or the patient id for
// guardians
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}

// GetRoleFromContext extracts the role from context
func GetRoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(RoleKey).(entity.Role)
	return role, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
