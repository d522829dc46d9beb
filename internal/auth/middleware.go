package auth

import (
	"net/http"

	"github.com/libreta-app/libreta/internal/shared"
)

// RequireUser rejects anonymous requests and injects the caller's
// visibility scope into the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.UserID() == 0 {
			shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
			return
		}
		ctx := shared.ContextWithScope(r.Context(), sess.Scope())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-administrator sessions.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := shared.ScopeFromContext(r.Context())
		if !ok || !scope.IsAdmin {
			shared.RespondError(w, http.StatusForbidden, "No tienes permisos para esta acción.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
