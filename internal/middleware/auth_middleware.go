package middleware

import (
	"context"
	"net/http"
	"strings"

	"SereneCMSAPI/internal/authz"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"
	"SereneCMSAPI/internal/service"
)

type contextKey string

const UserContextKey contextKey = "userContext"

type AuthMiddleware struct {
	authService *service.AuthService
}

func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

func (m *AuthMiddleware) VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			helper.WriteError(w, helper.NewUnauthorizedError(""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			helper.WriteError(w, helper.NewUnauthorizedError(""))
			return
		}

		userContext, err := m.authService.VerifyUser(r.Context(), parts[1])
		if err != nil {
			helper.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, userContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff rejects requests from members before they reach the staff
// handlers. Services still check the finer capabilities themselves.
func (m *AuthMiddleware) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(UserContextKey).(*model.UserDTO)
		if !ok {
			helper.WriteError(w, helper.NewUnauthorizedError(""))
			return
		}
		if !authz.IsStaff(user.Role) {
			helper.WriteError(w, helper.NewForbiddenError("Staff access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(UserContextKey).(*model.UserDTO)
		if !ok {
			helper.WriteError(w, helper.NewUnauthorizedError(""))
			return
		}
		if !authz.CanDelete(user.Role) {
			helper.WriteError(w, helper.NewForbiddenError("Admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
