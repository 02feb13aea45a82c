package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/bookstore-gateway/internal/domain/category"
)

// CategoryHandlers binds the category routes to the category service.
type CategoryHandlers struct {
	svc    *category.Service
	logger *slog.Logger
}

func NewCategoryHandlers(svc *category.Service, logger *slog.Logger) *CategoryHandlers {
	return &CategoryHandlers{svc: svc, logger: logger}
}

type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName" validate:"required"`
}

type UpdateCategoryRequest struct {
	CategoryID   string `json:"categoryId" validate:"required"`
	CategoryName string `json:"categoryName" validate:"required"`
}

func (h *CategoryHandlers) GetAllCategory(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.GetAllCategory(r.Context())
	if err != nil {
		h.logger.Error("catch on get-all", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func (h *CategoryHandlers) GetCategoryByName(w http.ResponseWriter, r *http.Request) {
	categoryName := chi.URLParam(r, "categoryName")

	data, err := h.svc.GetCategoryByName(r.Context(), categoryName)
	if err != nil {
		h.logger.Error("catch on get-category-by-categoryName", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func (h *CategoryHandlers) CreateCategoryBook(w http.ResponseWriter, r *http.Request) {
	var body CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.CreateCategoryBook(r.Context(), category.CreateCategory(body)); err != nil {
		h.logger.Error("catch on create-category-book", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *CategoryHandlers) UpdateCategoryBook(w http.ResponseWriter, r *http.Request) {
	var body UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.UpdateCategoryBook(r.Context(), category.UpdateCategory(body)); err != nil {
		h.logger.Error("catch on update-category-book", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
