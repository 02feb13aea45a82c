// Package stock forwards books-stock commands to the books-service
// channel. Stock records are owned and mutated exclusively downstream;
// the gateway only forwards commands against them.
package stock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/example/bookstore-gateway/internal/gateway"
	"github.com/example/bookstore-gateway/internal/query"
)

var ErrBookStockNotFound = errors.New("book stock not found")

// Record is the downstream-owned stock record shape.
type Record struct {
	BookID           string    `json:"bookId"`
	BookName         string    `json:"bookName"`
	Quantity         int       `json:"quantity"`
	TotalQuantity    int       `json:"totalQuantity"`
	QuantityBought   int       `json:"quantityBought"`
	TotalOrder       int       `json:"totalOrder"`
	LastOrderAt      time.Time `json:"lastOrderAt"`
	QuantityUpdateAt time.Time `json:"quantityUpdateAt"`
	IsAvailable      bool      `json:"isAvailable"`
}

// CreateBookStock is the HTTP-facing shape; the wire payload is the
// flattened {bookId, bookName, quantity}.
type CreateBookStock struct {
	BookID string `json:"bookId"`
	Book   struct {
		BookName string `json:"bookName"`
	} `json:"book"`
	Quantity int `json:"quantity"`
}

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAllBooksInStock(ctx context.Context) (json.RawMessage, error) {
	return s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.BooksStockCmd, Method: "get-all-books-in-stock"},
		struct{}{},
	)
}

// GetBookStockByID resolves one record; an empty reply means the id is
// unknown.
func (s *Service) GetBookStockByID(ctx context.Context, bookID string) (*Record, error) {
	data, err := s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.BooksStockCmd, Method: "get-book-stock-by-id"},
		bookID,
	)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, ErrBookStockNotFound
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Service) GetPagination(ctx context.Context, q query.PaginationQuery) (json.RawMessage, error) {
	return s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.BooksStockCmd, Method: "get-pagination"},
		q,
	)
}

// CreateBookToStock flattens the nested DTO into the wire payload
// before emitting.
func (s *Service) CreateBookToStock(ctx context.Context, body CreateBookStock) error {
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.BooksStockCmd, Method: "create-book-to-stock"},
		struct {
			BookID   string `json:"bookId"`
			BookName string `json:"bookName"`
			Quantity int    `json:"quantity"`
		}{body.BookID, body.Book.BookName, body.Quantity},
	)
}

// AddBookToStock emits a quantity increase against an already resolved
// record.
func (s *Service) AddBookToStock(ctx context.Context, addStock *Record, quantity int) error {
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.BooksStockCmd, Method: "add-book-in-stock"},
		struct {
			AddStock *Record `json:"addStock"`
			Quantity int     `json:"quantity"`
		}{addStock, quantity},
	)
}

func (s *Service) DeleteBookToStock(ctx context.Context, bookID string) error {
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.BooksStockCmd, Method: "delete-book-in-stock"},
		bookID,
	)
}
