// Package books forwards book commands to the books-service channel.
package books

import (
	"context"
	"encoding/json"

	"github.com/example/bookstore-gateway/internal/gateway"
	"github.com/example/bookstore-gateway/internal/query"
)

// Book is the downstream-owned record shape.
type Book struct {
	BookName    string `json:"bookName"`
	Price       int    `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	IsAvailable bool   `json:"isAvailable"`
}

type CreateBook struct {
	BookName string `json:"bookName"`
	Price    int    `json:"price"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
}

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

func (s *Service) CreateBook(ctx context.Context, body CreateBook) error {
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.BooksCmd, Method: "create-book"},
		body,
	)
}

func (s *Service) DeleteBook(ctx context.Context, bookID string) error {
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.BooksCmd, Method: "delete-book"},
		bookID,
	)
}

func (s *Service) GetAllBooks(ctx context.Context) (json.RawMessage, error) {
	return s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.BooksCmd, Method: "get-all-books"},
		struct{}{},
	)
}

// GetPagination runs a normalized paginated query downstream and
// returns the page verbatim.
func (s *Service) GetPagination(ctx context.Context, q query.PaginationQuery) (json.RawMessage, error) {
	return s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.BooksCmd, Method: "get-pagination-books"},
		q,
	)
}
