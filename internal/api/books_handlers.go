package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/bookstore-gateway/internal/domain/books"
	"github.com/example/bookstore-gateway/internal/query"
)

// BooksHandlers binds the books routes to the books service.
type BooksHandlers struct {
	svc    *books.Service
	logger *slog.Logger
}

func NewBooksHandlers(svc *books.Service, logger *slog.Logger) *BooksHandlers {
	return &BooksHandlers{svc: svc, logger: logger}
}

type CreateBookRequest struct {
	BookName string `json:"bookName" validate:"required"`
	Price    int    `json:"price" validate:"gte=0"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
	Category string `json:"category" validate:"required"`
}

func (h *BooksHandlers) GetPagination(w http.ResponseWriter, r *http.Request) {
	q := paginationFromRequest(r)

	data, err := h.svc.GetPagination(r.Context(), q)
	if err != nil {
		h.logger.Error("catch on getPagination", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func (h *BooksHandlers) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.GetAllBooks(r.Context())
	if err != nil {
		h.logger.Error("catch on get-all-books", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func (h *BooksHandlers) CreateBook(w http.ResponseWriter, r *http.Request) {
	var body CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.CreateBook(r.Context(), books.CreateBook(body)); err != nil {
		h.logger.Error("catch on create-book", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *BooksHandlers) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	if err := h.svc.DeleteBook(r.Context(), bookID); err != nil {
		h.logger.Error("catch on delete-book", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// paginationFromRequest normalizes the shared pagination query string.
// Caller-supplied filter/sort never survive; they are rebuilt here.
func paginationFromRequest(r *http.Request) query.PaginationQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return query.NewPagination(
		r.URL.Query().Get("category"),
		query.SortKey(r.URL.Query().Get("kSort")),
		r.URL.Query().Get("bookName"),
		page,
	)
}
