package middleware

import (
	"net/http"

	"optical-clinic-api/internal/domain/entity"
	"optical-clinic-api/internal/domain/repository"
	"optical-clinic-api/pkg/response"

	"gorm.io/gorm"
)

// PermissionMiddleware gates routes by permission code. Permissions are
// resolved against the user's role as stored in the database, so role
// changes take effect without re-issuing tokens.
type PermissionMiddleware struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewPermissionMiddleware(db *gorm.DB, userRepo repository.UserRepository) *PermissionMiddleware {
	return &PermissionMiddleware{
		db:       db,
		userRepo: userRepo,
	}
}

// Require checks that the authenticated user holds the given permission code
func (m *PermissionMiddleware) Require(code string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "User information not found")
				return
			}

			user, err := m.userRepo.FindActiveByID(m.db.WithContext(r.Context()), userID)
			if err != nil {
				response.InternalServerError(w, "Failed to resolve user permissions")
				return
			}
			if user == nil {
				response.Unauthorized(w, "User account is inactive")
				return
			}

			if !user.HasPermission(code) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows only users with the admin role, regardless of
// permission assignments.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roleID, ok := GetRoleIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Role information not found")
			return
		}
		if roleID != entity.RoleIDAdmin {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}
