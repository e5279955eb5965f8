package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	"github.com/go-chi/chi/v5"
)

type createUserRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type existsResponse struct {
	Email  string `json:"email"`
	Exists bool   `json:"exists"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps store errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, credentials.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, credentials.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, credentials.ErrIncorrectPassword):
		return http.StatusUnauthorized
	case errors.Is(err, credentials.ErrEmailRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Readyz handles GET /readyz; it fails while the store is unreachable.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn(ctx, "store not ready", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// CreateUser handles POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account := models.Account{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Country:  req.Country,
	}
	msg, err := h.store.CreateUser(r.Context(), account, []byte(req.Password))
	if err != nil {
		writeError(w, statusFor(err), msg)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: msg})
}

// Login handles POST /api/v1/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.store.VerifyLogin(r.Context(), req.Email, []byte(req.Password))
	if err != nil {
		writeError(w, statusFor(err), msg)
		return
	}

	token, err := h.issue(req.Email)
	if err != nil {
		h.logger.Error(r.Context(), "token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, credentials.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg, AccessToken: token})
}

// UserExists handles GET /api/v1/users/{email}/exists. chi matches on the
// raw path, so the parameter arrives percent-encoded when the client
// escaped it.
func (h *Handler) UserExists(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email in path")
		return
	}

	ok, err := h.store.UserExists(r.Context(), email)
	if err != nil {
		h.logger.Error(r.Context(), "exists check failed", "error", err)
		writeError(w, http.StatusInternalServerError, credentials.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, existsResponse{Email: email, Exists: ok})
}
