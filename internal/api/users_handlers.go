package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/bookstore-gateway/internal/api/middleware"
	"github.com/example/bookstore-gateway/internal/domain/users"
)

// UsersHandlers binds the users routes to the users service.
type UsersHandlers struct {
	svc    *users.Service
	logger *slog.Logger
}

func NewUsersHandlers(svc *users.Service, logger *slog.Logger) *UsersHandlers {
	return &UsersHandlers{svc: svc, logger: logger}
}

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

func (h *UsersHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var body RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.Register(r.Context(), users.RegisterUser{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.logger.Error("catch on register", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Me returns the verified principal; no bus call is involved.
func (h *UsersHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"userId": claims.UserID,
		"email":  claims.Email,
		"role":   claims.Role,
		"banned": claims.Banned,
	})
}

func (h *UsersHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var body UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.Update(r.Context(), middleware.GetUserID(r.Context()), users.UpdateUser(body))
	if err != nil {
		h.logger.Error("catch on update", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var body ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.ChangePassword(r.Context(), middleware.GetUserID(r.Context()), body.Password)
	if err != nil {
		h.logger.Error("catch on changePassword", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandlers) ReportNewUsers(w http.ResponseWriter, r *http.Request) {
	newUsers, err := h.svc.ReportNewUsers(r.Context())
	if err != nil {
		h.logger.Error("catch on report-new-user", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, newUsers)
}

func (h *UsersHandlers) BanUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.svc.Ban(r.Context(), userID); err != nil {
		h.logger.Error("catch on ban-user", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandlers) UnBanUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.svc.UnBan(r.Context(), userID); err != nil {
		h.logger.Error("catch on un-ban-user", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
