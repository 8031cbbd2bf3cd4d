package pharmacy

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"medoka/internal/auth"
	"medoka/internal/logs"
	"medoka/internal/middleware"
	"medoka/internal/models"
	"medoka/internal/repo"
	"medoka/internal/validate"
)

type Handler struct {
	store *repo.PharmacyStore
}

func New(store *repo.PharmacyStore) *Handler { return &Handler{store: store} }

func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logs.Logger.Errorf("%s failed: reqid=%s err=%v", op, middleware.GetRequestID(r), err)
	models.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// ownerID достаёт id менеджера из клеймов гейта; id аптеки — из пути.
func ownerID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	claims, ok := auth.ManagerFromRequest(r)
	if !ok {
		models.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return 0, false
	}
	return claims.ManagerID, true
}

func pharmacyID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid pharmacy id")
		return 0, false
	}
	return uint(id), true
}

// GET /pharmacy
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	managerID, ok := ownerID(w, r)
	if !ok {
		return
	}
	out, err := h.store.ListByManager(r.Context(), managerID)
	if err != nil {
		internalError(w, r, "list pharmacies", err)
		return
	}
	models.WriteJSON(w, http.StatusOK, out)
}

// PUT /pharmacy/info — с id обновляет свою аптеку, без id создаёт новую.
func (h *Handler) UpsertInfo(w http.ResponseWriter, r *http.Request) {
	managerID, ok := ownerID(w, r)
	if !ok {
		return
	}
	var req struct {
		ID               any    `json:"id"`
		CompanyName      string `json:"companyName"`
		SerialNumber     any    `json:"serialNumber"`
		RegistrationDate string `json:"registrationDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	serial, date, err := validate.PharmacyInfo(req.CompanyName, req.SerialNumber, req.RegistrationDate)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	in := repo.PharmacyInfoInput{
		CompanyName:      req.CompanyName,
		SerialNumber:     serial,
		RegistrationDate: date,
	}

	if id, err := validate.Int64(req.ID); err == nil && id > 0 {
		p, err := h.store.UpdateInfo(r.Context(), uint(id), managerID, in)
		if err == repo.ErrNotFound {
			models.WriteError(w, http.StatusBadRequest, "Pharmacy not found")
			return
		}
		if err != nil {
			internalError(w, r, "update pharmacy info", err)
			return
		}
		models.WriteJSON(w, http.StatusOK, map[string]any{
			"message":    "Pharmacy info updated successfully",
			"pharmacyId": p.ID,
		})
		return
	}

	p, err := h.store.CreatePharmacy(r.Context(), managerID, in)
	if err != nil {
		internalError(w, r, "create pharmacy", err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{
		"message":    "Pharmacy created successfully",
		"pharmacyId": p.ID,
	})
}

// PUT /pharmacy/adress/{id}
func (h *Handler) UpdateAdress(w http.ResponseWriter, r *http.Request) {
	managerID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pharmacyID(w, r)
	if !ok {
		return
	}
	var req struct {
		Adress string `json:"adress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Adress(req.Adress); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch err := h.store.UpdateAdress(r.Context(), id, managerID, req.Adress); err {
	case nil:
		models.WriteMessage(w, http.StatusOK, "Adress updated successfuly")
	case repo.ErrNotFound:
		models.WriteError(w, http.StatusBadRequest, "Pharmacy not found")
	default:
		internalError(w, r, "update pharmacy adress", err)
	}
}

// PUT /pharmacy/phone/{id}
func (h *Handler) UpdatePhone(w http.ResponseWriter, r *http.Request) {
	managerID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pharmacyID(w, r)
	if !ok {
		return
	}
	var req struct {
		PhoneNumber any `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	phone, err := validate.PhoneNumber(req.PhoneNumber)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch err := h.store.UpdatePhone(r.Context(), id, managerID, phone); err {
	case nil:
		models.WriteMessage(w, http.StatusOK, "Phone number updated successfuly")
	case repo.ErrNotFound:
		models.WriteError(w, http.StatusBadRequest, "Pharmacy not found")
	default:
		internalError(w, r, "update pharmacy phone", err)
	}
}

// PUT /pharmacy/avatar/{id}
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	managerID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pharmacyID(w, r)
	if !ok {
		return
	}
	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch err := h.store.UpdateAvatar(r.Context(), id, managerID, req.Avatar); err {
	case nil:
		models.WriteMessage(w, http.StatusOK, "Avatar updated successfuly")
	case repo.ErrNotFound:
		models.WriteError(w, http.StatusBadRequest, "Pharmacy not found")
	default:
		internalError(w, r, "update pharmacy avatar", err)
	}
}

// PUT /pharmacy/hours/{id} — заменяет недельное расписание целиком.
func (h *Handler) UpdateHours(w http.ResponseWriter, r *http.Request) {
	managerID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pharmacyID(w, r)
	if !ok {
		return
	}
	var req struct {
		Days []models.WorkDay `json:"Days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, d := range req.Days {
		if !d.Open {
			continue
		}
		if err := validate.TimeOfDay(d.StartsAt); err != nil {
			models.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validate.TimeOfDay(d.EndsAt); err != nil {
			models.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	switch err := h.store.ReplaceHours(r.Context(), id, managerID, req.Days); err {
	case nil:
		models.WriteMessage(w, http.StatusOK, "Work days updated successfuly")
	case repo.ErrNotFound:
		models.WriteError(w, http.StatusBadRequest, "Pharmacy not found")
	default:
		internalError(w, r, "update pharmacy hours", err)
	}
}
