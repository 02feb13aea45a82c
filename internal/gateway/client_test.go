package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/example/bookstore-gateway/internal/gateway"
	"github.com/example/bookstore-gateway/internal/gateway/gatewaytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Request_EchoesPayload(t *testing.T) {
	bus := &gatewaytest.FakeTransport{
		ReplyFunc: func(_ string, value []byte) ([]byte, error) {
			// Echo the payload back as the reply body.
			var msg struct {
				Payload json.RawMessage `json:"payload"`
			}
			require.NoError(t, json.Unmarshal(value, &msg))
			return gatewaytest.Reply(json.RawMessage(msg.Payload)), nil
		},
	}
	client := gateway.NewClient(bus, gateway.BooksService)

	payload := map[string]string{"bookName": "Dune"}
	data, err := client.Request(context.Background(), gateway.Envelope{
		Cmd:    gateway.BooksCmd,
		Method: "get-all-books",
	}, payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bookName":"Dune"}`, string(data))

	require.Len(t, bus.Requests, 1)
	assert.Equal(t, gateway.BooksService, bus.Requests[0].Channel)

	var sent struct {
		Cmd    string `json:"cmd"`
		Method string `json:"method"`
	}
	require.NoError(t, bus.Requests[0].Decode(&sent))
	assert.Equal(t, "books", sent.Cmd)
	assert.Equal(t, "get-all-books", sent.Method)
}

func TestClient_Request_DownstreamError(t *testing.T) {
	bus := &gatewaytest.FakeTransport{
		ReplyFunc: func(string, []byte) ([]byte, error) {
			return gatewaytest.ReplyError("category not found"), nil
		},
	}
	client := gateway.NewClient(bus, gateway.BooksService)

	_, err := client.Request(context.Background(), gateway.Envelope{
		Cmd:    gateway.CategoryCmd,
		Method: "get-category-by-categoryName",
	}, "Sci-Fi")
	require.Error(t, err)

	var derr *gateway.DownstreamError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "category", derr.Cmd)
	assert.Contains(t, derr.Error(), "category not found")
}

func TestClient_Request_TransportFailure(t *testing.T) {
	bus := &gatewaytest.FakeTransport{
		ReplyFunc: func(string, []byte) ([]byte, error) {
			return nil, gateway.ErrTimeout
		},
	}
	client := gateway.NewClient(bus, gateway.UsersService)

	_, err := client.Request(context.Background(), gateway.Envelope{
		Cmd:    gateway.UsersCmd,
		Method: "report-new-user",
	}, struct{}{})
	assert.ErrorIs(t, err, gateway.ErrTimeout)
}

func TestClient_Emit_DoesNotWait(t *testing.T) {
	bus := &gatewaytest.FakeTransport{
		// A slow replier must not matter: Emit never consults ReplyFunc.
		ReplyFunc: func(string, []byte) ([]byte, error) {
			time.Sleep(5 * time.Second)
			return nil, errors.New("unreachable")
		},
	}
	client := gateway.NewClient(bus, gateway.BooksService)

	done := make(chan error, 1)
	go func() {
		done <- client.Emit(context.Background(), gateway.Envelope{
			Cmd:    gateway.BooksStockCmd,
			Method: "delete-book-in-stock",
		}, "book-1")
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Emit blocked waiting for a reply")
	}
	assert.Len(t, bus.Published, 1)
	assert.Empty(t, bus.Requests)
}

func TestClient_Emit_NoDeduplication(t *testing.T) {
	bus := &gatewaytest.FakeTransport{}
	client := gateway.NewClient(bus, gateway.BooksService)

	env := gateway.Envelope{Cmd: gateway.CategoryCmd, Method: "create-category-book"}
	body := map[string]string{"categoryName": "Manga"}

	require.NoError(t, client.Emit(context.Background(), env, body))
	require.NoError(t, client.Emit(context.Background(), env, body))

	// Identical input emits two independent commands.
	assert.Len(t, bus.Published, 2)
	assert.Equal(t, bus.Published[0].Value, bus.Published[1].Value)
}
