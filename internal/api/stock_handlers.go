package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/bookstore-gateway/internal/domain/stock"
	"github.com/example/bookstore-gateway/internal/query"
)

// stockPager lets the pagination read be served through the Redis
// cache while every other operation hits the service directly.
type stockPager interface {
	GetPagination(ctx context.Context, q query.PaginationQuery) (json.RawMessage, error)
}

// StockHandlers binds the books-stock routes to the stock service.
type StockHandlers struct {
	svc    *stock.Service
	pager  stockPager
	logger *slog.Logger
}

func NewStockHandlers(svc *stock.Service, pager stockPager, logger *slog.Logger) *StockHandlers {
	if pager == nil {
		pager = svc
	}
	return &StockHandlers{svc: svc, pager: pager, logger: logger}
}

type CreateBookStockRequest struct {
	BookID string `json:"bookId" validate:"required"`
	Book   struct {
		BookName string `json:"bookName" validate:"required"`
	} `json:"book" validate:"required"`
	Quantity int `json:"quantity" validate:"gte=1"`
}

type AddBookInStockRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

func (h *StockHandlers) GetPagination(w http.ResponseWriter, r *http.Request) {
	q := paginationFromRequest(r)

	data, err := h.pager.GetPagination(r.Context(), q)
	if err != nil {
		h.logger.Error("catch on getPagination", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func (h *StockHandlers) GetAllBooksInStock(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.GetAllBooksInStock(r.Context())
	if err != nil {
		h.logger.Error("catch on get-all-books-in-stock", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func (h *StockHandlers) CreateBookToStock(w http.ResponseWriter, r *http.Request) {
	var body CreateBookStockRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd := stock.CreateBookStock{BookID: body.BookID, Quantity: body.Quantity}
	cmd.Book.BookName = body.Book.BookName

	if err := h.svc.CreateBookToStock(r.Context(), cmd); err != nil {
		h.logger.Error("catch on create-book-to-stock", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// AddBookInStock resolves the record first, so an unknown id fails fast
// instead of emitting a command nobody can apply.
func (h *StockHandlers) AddBookInStock(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	addStock, err := h.svc.GetBookStockByID(r.Context(), bookID)
	if err != nil {
		if errors.Is(err, stock.ErrBookStockNotFound) {
			respondError(w, http.StatusNotFound, "book stock not found")
			return
		}
		h.logger.Error("catch on add-book-in-stock", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	var body AddBookInStockRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.AddBookToStock(r.Context(), addStock, body.Quantity); err != nil {
		h.logger.Error("catch on add-book-in-stock", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StockHandlers) DeleteBookInStock(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	if err := h.svc.DeleteBookToStock(r.Context(), bookID); err != nil {
		h.logger.Error("catch on delete-book-in-stock", "error", err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
