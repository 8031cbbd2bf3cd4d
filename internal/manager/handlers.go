package manager

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"medoka/internal/auth"
	"medoka/internal/logs"
	"medoka/internal/mail"
	"medoka/internal/middleware"
	"medoka/internal/models"
	"medoka/internal/repo"
	"medoka/internal/validate"
)

const bcryptCost = 10

type Handler struct {
	store       *repo.ManagerStore
	tokens      *auth.Tokens
	mail        *mail.Dispatcher
	frontendURL string
	secure      bool
}

func New(store *repo.ManagerStore, tokens *auth.Tokens, dispatcher *mail.Dispatcher, frontendURL string, secureCookies bool) *Handler {
	return &Handler{
		store:       store,
		tokens:      tokens,
		mail:        dispatcher,
		frontendURL: frontendURL,
		secure:      secureCookies,
	}
}

// internalError — единый выход для неожиданных отказов: детали в лог,
// клиенту — общий ответ.
func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logs.Logger.Errorf("%s failed: reqid=%s err=%v", op, middleware.GetRequestID(r), err)
	models.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// POST /manager/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Email(req.Email); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.store.CreateManager(r.Context(), req.Email)
	if err == repo.ErrEmailTaken {
		models.WriteError(w, http.StatusBadRequest, "Email already exist")
		return
	}
	if err != nil {
		internalError(w, r, "register", err)
		return
	}

	code := newVerificationCode()
	if err := h.store.IssueVerification(r.Context(), m.ID, code); err != nil {
		internalError(w, r, "register", err)
		return
	}
	h.mail.VerificationCode(m.Email, code)

	models.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Email sent",
		"managerId": m.ID,
	})
}

// POST /manager/verify/{managerId}
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	managerID, err := strconv.ParseUint(mux.Vars(r)["managerId"], 10, 64)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid manager id")
		return
	}
	var req struct {
		Token any `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	code, err := validate.VerificationCode(req.Token)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.store.ConsumeVerification(r.Context(), uint(managerID), code)
	if err == repo.ErrTokenInvalid {
		models.WriteError(w, http.StatusBadRequest, "Access denied, invalid token")
		return
	}
	if err != nil {
		internalError(w, r, "verify", err)
		return
	}

	jwtToken, err := h.tokens.Issue(m)
	if err != nil {
		internalError(w, r, "verify", err)
		return
	}
	auth.SetSessionCookie(w, jwtToken, h.secure)
	models.WriteMessage(w, http.StatusOK, "Email verified")
}

// POST /auth
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Email(req.Email); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Password(req.Password); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.store.GetByEmail(r.Context(), req.Email)
	if err == repo.ErrNotFound {
		models.WriteError(w, http.StatusNotFound, "Account not found")
		return
	}
	if err != nil {
		internalError(w, r, "login", err)
		return
	}

	// Пустой хэш (пароль никогда не задавался) — тот же отказ, что и
	// несовпадение: статус наружу один.
	if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(req.Password)) != nil {
		models.WriteError(w, http.StatusBadRequest, "Invalid password")
		return
	}

	jwtToken, err := h.tokens.Issue(m)
	if err != nil {
		internalError(w, r, "login", err)
		return
	}
	auth.SetSessionCookie(w, jwtToken, h.secure)
	models.WriteMessage(w, http.StatusOK, "Successfully logged in")
}

// POST /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secure)
	models.WriteMessage(w, http.StatusOK, "Successfully logged out")
}

// PUT /manager/password
func (h *Handler) SetPassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ManagerFromRequest(r)
	if !ok {
		models.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Password(req.Password); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		internalError(w, r, "set password", err)
		return
	}
	if err := h.store.SetPassword(r.Context(), claims.ManagerID, string(hash)); err != nil {
		internalError(w, r, "set password", err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "Password updated")
}

// PUT /manager/info
func (h *Handler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ManagerFromRequest(r)
	if !ok {
		models.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	var req struct {
		Gender      string `json:"gender"`
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		PhoneNumber any    `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	phone, err := validate.ManagerInfo(req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	gender := models.Gender(req.Gender)
	if gender != models.GenderMale {
		gender = models.GenderFemale
	}

	m, err := h.store.UpdateProfile(r.Context(), claims.ManagerID, repo.ProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      gender,
		PhoneNumber: phone,
	})
	if err != nil {
		internalError(w, r, "update info", err)
		return
	}

	// сессию перевыпускаем: в клеймах лежит имя
	jwtToken, err := h.tokens.Issue(m)
	if err != nil {
		internalError(w, r, "update info", err)
		return
	}
	auth.SetSessionCookie(w, jwtToken, h.secure)
	models.WriteMessage(w, http.StatusOK, "Manager info updated")
}

// POST /manager/recover
func (h *Handler) Recover(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Email(req.Email); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.store.GetByEmail(r.Context(), req.Email)
	if err == repo.ErrNotFound {
		models.WriteError(w, http.StatusBadRequest, "Account does not exist")
		return
	}
	if err != nil {
		internalError(w, r, "recover", err)
		return
	}

	token := newRecoveryToken()
	if err := h.store.IssueRecovery(r.Context(), m.ID, token); err != nil {
		internalError(w, r, "recover", err)
		return
	}
	url := strings.TrimRight(h.frontendURL, "/") + "/recover/" + token
	h.mail.RecoveryLink(m.Email, url)

	models.WriteMessage(w, http.StatusOK, "Recovery link sent")
}

// PUT /recover/{token}
func (h *Handler) CompleteRecovery(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Password(req.Password); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		internalError(w, r, "complete recovery", err)
		return
	}
	err = h.store.ConsumeRecovery(r.Context(), token, string(hash))
	if err == repo.ErrNotFound {
		models.WriteError(w, http.StatusNotFound, "Access denied, invalid token")
		return
	}
	if err != nil {
		internalError(w, r, "complete recovery", err)
		return
	}
	// без логина: клиент идёт на /auth с новым паролем
	models.WriteMessage(w, http.StatusOK, "Password updated")
}

// newVerificationCode — шестизначный код из crypto/rand.
func newVerificationCode() int {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	return int(n.Int64())
}

// newRecoveryToken — 16 hex-символов (8 случайных байт).
func newRecoveryToken() string {
	var raw [8]byte
	_, _ = rand.Read(raw[:])
	return hex.EncodeToString(raw[:])
}
