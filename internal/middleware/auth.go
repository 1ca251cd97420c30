package middleware

import (
	"context"
	"net/http"
	"strings"

	"hvac-backend/internal/auth"
	"hvac-backend/internal/models"
	"hvac-backend/pkg/utils"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const RoleKey contextKey = "role"

// UserLookup loads the current state of a user so role changes and
// suspensions apply immediately, not at token expiry.
type UserLookup interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      UserLookup
	cookieName string
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users UserLookup, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		users:      users,
		cookieName: cookieName,
	}
}

// Authenticate requires a valid session of any role.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return m.RequireRole()(next)
}

// RequireRole requires a valid session whose user has one of the allowed
// roles. With no roles given any authenticated user passes.
func (m *AuthMiddleware) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := m.tokenFromRequest(r)
			if token == "" {
				deny(w, r, http.StatusUnauthorized, "/login", "Autenticação necessária")
				return
			}

			claims, err := m.jwtManager.ValidateToken(token)
			if err != nil {
				deny(w, r, http.StatusUnauthorized, "/login", "Sessão inválida ou expirada")
				return
			}

			user, err := m.users.GetUser(r.Context(), claims.UserID)
			if err != nil {
				deny(w, r, http.StatusUnauthorized, "/login", "Usuário não encontrado")
				return
			}
			if !user.IsActive {
				deny(w, r, http.StatusForbidden, "/login?error=suspended", "Conta suspensa. Contate o administrador.")
				return
			}

			if len(allowedRoles) > 0 && !hasRole(user.Role, allowedRoles) {
				deny(w, r, http.StatusForbidden, "/", "Acesso negado: permissão insuficiente")
				return
			}

			// Database values win over the token claims.
			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, RoleKey, user.Role)
			if id, ok := r.Context().Value(identityKey).(*requestIdentity); ok {
				id.UserID, id.Email, id.Role = user.ID, user.Email, user.Role
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest reads "Authorization: Bearer <token>" and falls back to
// the session cookie.
func (m *AuthMiddleware) tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if m.cookieName != "" {
		if c, err := r.Cookie(m.cookieName); err == nil {
			return c.Value
		}
	}
	return ""
}

// deny redirects browser navigations and answers API calls with JSON.
func deny(w http.ResponseWriter, r *http.Request, status int, redirect, message string) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, redirect, http.StatusFound)
		return
	}
	utils.Error(w, status, message)
}

func hasRole(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetRoleFromContext extracts role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
