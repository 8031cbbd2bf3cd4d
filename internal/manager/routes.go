package manager

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes вешает маршруты менеджера на роутер API.
// guard — гейт сессии для защищённых операций.
func RegisterRoutes(r *mux.Router, h *Handler, guard mux.MiddlewareFunc) {
	r.HandleFunc("/auth", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/manager/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/manager/verify/{managerId:[0-9]+}", h.Verify).Methods(http.MethodPost)
	r.HandleFunc("/manager/recover", h.Recover).Methods(http.MethodPost)
	r.HandleFunc("/recover/{token:[a-f0-9]+}", h.CompleteRecovery).Methods(http.MethodPut)

	sub := r.NewRoute().Subrouter()
	sub.Use(guard)
	sub.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	sub.HandleFunc("/manager/password", h.SetPassword).Methods(http.MethodPut)
	sub.HandleFunc("/manager/info", h.UpdateInfo).Methods(http.MethodPut)
}
