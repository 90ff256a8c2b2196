package middleware

import (
	"net/http"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireTherapist is a convenience middleware for therapist-only endpoints
func RequireTherapist(next http.Handler) http.Handler {
	return RequireRole(entity.RoleTherapist)(next)
}

// RequireGuardian is a convenience middleware for guardian-only endpoints
func RequireGuardian(next http.Handler) http.Handler {
	return RequireRole(entity.RoleGuardian)(next)
}
