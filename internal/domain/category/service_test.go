package category_test

import (
	"context"
	"testing"

	"github.com/example/bookstore-gateway/internal/domain/category"
	"github.com/example/bookstore-gateway/internal/gateway"
	"github.com/example/bookstore-gateway/internal/gateway/gatewaytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryBook_Emits(t *testing.T) {
	bus := &gatewaytest.FakeTransport{}
	svc := category.NewService(gateway.NewClient(bus, gateway.BooksService))

	err := svc.CreateCategoryBook(context.Background(), category.CreateCategory{CategoryName: "Manga"})
	require.NoError(t, err)
	require.Len(t, bus.Published, 1)
	assert.Equal(t, gateway.BooksService, bus.Published[0].Channel)

	var msg struct {
		Cmd     string `json:"cmd"`
		Method  string `json:"method"`
		Payload struct {
			CategoryName string `json:"categoryName"`
		} `json:"payload"`
	}
	require.NoError(t, bus.Published[0].Decode(&msg))
	assert.Equal(t, "category", msg.Cmd)
	assert.Equal(t, "create-category-book", msg.Method)
	assert.Equal(t, "Manga", msg.Payload.CategoryName)
}

func TestCreateCategoryBook_TwiceEmitsTwoCommands(t *testing.T) {
	bus := &gatewaytest.FakeTransport{}
	svc := category.NewService(gateway.NewClient(bus, gateway.BooksService))

	body := category.CreateCategory{CategoryName: "Manga"}
	require.NoError(t, svc.CreateCategoryBook(context.Background(), body))
	require.NoError(t, svc.CreateCategoryBook(context.Background(), body))

	assert.Len(t, bus.Published, 2)
}

func TestGetAllCategory_PassesReplyThrough(t *testing.T) {
	want := []category.Category{{CategoryID: "c1", CategoryName: "Manga"}}
	bus := &gatewaytest.FakeTransport{
		ReplyFunc: func(string, []byte) ([]byte, error) {
			return gatewaytest.Reply(want), nil
		},
	}
	svc := category.NewService(gateway.NewClient(bus, gateway.BooksService))

	data, err := svc.GetAllCategory(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"categoryId":"c1","categoryName":"Manga"}]`, string(data))
}

func TestGetCategoryByName_SendsBareName(t *testing.T) {
	bus := &gatewaytest.FakeTransport{}
	svc := category.NewService(gateway.NewClient(bus, gateway.BooksService))

	_, err := svc.GetCategoryByName(context.Background(), "Sci-Fi")
	require.NoError(t, err)
	require.Len(t, bus.Requests, 1)

	var msg struct {
		Method  string `json:"method"`
		Payload string `json:"payload"`
	}
	require.NoError(t, bus.Requests[0].Decode(&msg))
	assert.Equal(t, "get-category-by-categoryName", msg.Method)
	assert.Equal(t, "Sci-Fi", msg.Payload)
}
