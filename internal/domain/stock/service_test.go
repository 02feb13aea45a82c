package stock_test

import (
	"context"
	"testing"

	"github.com/example/bookstore-gateway/internal/domain/stock"
	"github.com/example/bookstore-gateway/internal/gateway"
	"github.com/example/bookstore-gateway/internal/gateway/gatewaytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(bus *gatewaytest.FakeTransport) *stock.Service {
	return stock.NewService(gateway.NewClient(bus, gateway.BooksService))
}

func TestCreateBookToStock_FlattensPayload(t *testing.T) {
	bus := &gatewaytest.FakeTransport{}
	svc := newService(bus)

	body := stock.CreateBookStock{BookID: "b1", Quantity: 10}
	body.Book.BookName = "Dune"

	require.NoError(t, svc.CreateBookToStock(context.Background(), body))
	require.Len(t, bus.Published, 1)

	var msg struct {
		Cmd     string `json:"cmd"`
		Method  string `json:"method"`
		Payload struct {
			BookID   string `json:"bookId"`
			BookName string `json:"bookName"`
			Quantity int    `json:"quantity"`
		} `json:"payload"`
	}
	require.NoError(t, bus.Published[0].Decode(&msg))
	assert.Equal(t, "books-stock", msg.Cmd)
	assert.Equal(t, "create-book-to-stock", msg.Method)
	assert.Equal(t, "b1", msg.Payload.BookID)
	assert.Equal(t, "Dune", msg.Payload.BookName)
	assert.Equal(t, 10, msg.Payload.Quantity)
}

func TestGetBookStockByID_NotFound(t *testing.T) {
	bus := &gatewaytest.FakeTransport{
		ReplyFunc: func(string, []byte) ([]byte, error) {
			return gatewaytest.Reply(nil), nil
		},
	}
	svc := newService(bus)

	_, err := svc.GetBookStockByID(context.Background(), "missing")
	assert.ErrorIs(t, err, stock.ErrBookStockNotFound)
}

func TestGetBookStockByID_DecodesRecord(t *testing.T) {
	bus := &gatewaytest.FakeTransport{
		ReplyFunc: func(string, []byte) ([]byte, error) {
			return gatewaytest.Reply(stock.Record{BookID: "b1", BookName: "Dune", Quantity: 3}), nil
		},
	}
	svc := newService(bus)

	rec, err := svc.GetBookStockByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", rec.BookName)
	assert.Equal(t, 3, rec.Quantity)
}

func TestAddBookToStock_WrapsRecordAndQuantity(t *testing.T) {
	bus := &gatewaytest.FakeTransport{}
	svc := newService(bus)

	rec := &stock.Record{BookID: "b1", BookName: "Dune", Quantity: 3}
	require.NoError(t, svc.AddBookToStock(context.Background(), rec, 7))
	require.Len(t, bus.Published, 1)

	var msg struct {
		Method  string `json:"method"`
		Payload struct {
			AddStock stock.Record `json:"addStock"`
			Quantity int          `json:"quantity"`
		} `json:"payload"`
	}
	require.NoError(t, bus.Published[0].Decode(&msg))
	assert.Equal(t, "add-book-in-stock", msg.Method)
	assert.Equal(t, "b1", msg.Payload.AddStock.BookID)
	assert.Equal(t, 7, msg.Payload.Quantity)
}

func TestDeleteBookToStock_SendsBareID(t *testing.T) {
	bus := &gatewaytest.FakeTransport{}
	svc := newService(bus)

	require.NoError(t, svc.DeleteBookToStock(context.Background(), "b1"))
	require.Len(t, bus.Published, 1)

	var msg struct {
		Method  string `json:"method"`
		Payload string `json:"payload"`
	}
	require.NoError(t, bus.Published[0].Decode(&msg))
	assert.Equal(t, "delete-book-in-stock", msg.Method)
	assert.Equal(t, "b1", msg.Payload)
}
