package middleware

import (
	"net/http"

	"go-clinic-workflow/internal/domain/entity"
	"go-clinic-workflow/pkg/response"
)

// RequireRole gates a route to the given roles. It must run after
// Authenticate, which puts the role into the request context.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role not found in context")
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You do not have permission to access this resource")
		})
	}
}

// RequireFrontDesk limits a route to front desk staff.
func RequireFrontDesk(next http.Handler) http.Handler {
	return RequireRole(entity.RoleFrontDesk)(next)
}

// RequireCareProfessional limits a route to care professionals.
func RequireCareProfessional(next http.Handler) http.Handler {
	return RequireRole(entity.RoleCareProfessional)(next)
}
