package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"medoka/internal/models"
)

type ctxKey string

const claimsKey ctxKey = "manager"

// Require — гейт для защищённых маршрутов: достаёт куку, проверяет токен,
// кладёт клеймы в контекст. БД не трогает — подпись считается истиной.
func Require(t *Tokens) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				models.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			claims, err := t.Parse(c.Value)
			if err != nil {
				models.WriteError(w, http.StatusBadRequest, "Invalid token.")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ManagerFromRequest возвращает клеймы, положенные гейтом.
func ManagerFromRequest(r *http.Request) (*Claims, bool) {
	c, ok := r.Context().Value(claimsKey).(*Claims)
	return c, ok
}
