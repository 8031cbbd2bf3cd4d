package middleware

import (
	"net/http"
)

// CORS отдаёт заголовки для фронтенда: в production — только его origin,
// иначе — origin запроса. Навешивается ВНЕ роутера (поверх mux):
// preflight с несовпадающим методом иначе уходит в 405 мимо цепочки
// Use и остаётся без Access-Control-заголовков.
func CORS(production bool, frontendURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if production {
				origin = frontendURL
			}
			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			// credentials вместе с "*" браузер отвергает
			if origin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
