// Package category forwards category commands to the books-service
// channel.
package category

import (
	"context"
	"encoding/json"

	"github.com/example/bookstore-gateway/internal/gateway"
)

// Category is the downstream-owned record shape.
type Category struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

type CreateCategory struct {
	CategoryName string `json:"categoryName"`
}

type UpdateCategory struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

// CreateCategoryBook emits the create command. Eventual consistency:
// success only certifies dispatch.
func (s *Service) CreateCategoryBook(ctx context.Context, body CreateCategory) error {
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.CategoryCmd, Method: "create-category-book"},
		body,
	)
}

func (s *Service) UpdateCategoryBook(ctx context.Context, body UpdateCategory) error {
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.CategoryCmd, Method: "update-category-book"},
		body,
	)
}

// GetAllCategory returns the downstream category list verbatim.
func (s *Service) GetAllCategory(ctx context.Context) (json.RawMessage, error) {
	return s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.CategoryCmd, Method: "get-all-category"},
		struct{}{},
	)
}

func (s *Service) GetCategoryByName(ctx context.Context, categoryName string) (json.RawMessage, error) {
	return s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.CategoryCmd, Method: "get-category-by-categoryName"},
		categoryName,
	)
}
