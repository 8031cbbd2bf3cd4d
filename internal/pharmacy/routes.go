package pharmacy

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes — все аптечные маршруты под гейтом сессии.
func RegisterRoutes(r *mux.Router, h *Handler, guard mux.MiddlewareFunc) {
	sub := r.NewRoute().Subrouter()
	sub.Use(guard)
	sub.HandleFunc("/pharmacy", h.List).Methods(http.MethodGet)
	sub.HandleFunc("/pharmacy/info", h.UpsertInfo).Methods(http.MethodPut)
	sub.HandleFunc("/pharmacy/adress/{id:[0-9]+}", h.UpdateAdress).Methods(http.MethodPut)
	sub.HandleFunc("/pharmacy/phone/{id:[0-9]+}", h.UpdatePhone).Methods(http.MethodPut)
	sub.HandleFunc("/pharmacy/avatar/{id:[0-9]+}", h.UpdateAvatar).Methods(http.MethodPut)
	sub.HandleFunc("/pharmacy/hours/{id:[0-9]+}", h.UpdateHours).Methods(http.MethodPut)
}
