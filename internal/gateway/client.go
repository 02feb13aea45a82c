package gateway

import (
	"context"
	"encoding/json"
	"fmt"
)

// Transport is the message-bus primitive the client is built on. The
// transport owns connection lifecycle and request/reply correlation;
// concurrent Request calls on the same channel must each receive their
// own reply.
type Transport interface {
	// Publish hands a message to the channel and returns as soon as the
	// transport has accepted it. Fire-and-forget.
	Publish(ctx context.Context, channel string, value []byte) error

	// Request sends a message and blocks until exactly one correlated
	// reply arrives, the context is done, or the transport's request
	// timeout expires.
	Request(ctx context.Context, channel string, value []byte) ([]byte, error)
}

// Client wraps one downstream channel with the two bus verbs. Reads go
// through Request, writes through Emit; a write that returned without
// error certifies dispatch only, not downstream processing.
type Client struct {
	bus     Transport
	channel string
}

func NewClient(bus Transport, channel string) *Client {
	return &Client{bus: bus, channel: channel}
}

// Request sends payload under env and resolves with the reply body.
// A reply that carries an error string fails with *DownstreamError.
func (c *Client) Request(ctx context.Context, env Envelope, payload any) (json.RawMessage, error) {
	value, err := json.Marshal(message{Cmd: env.Cmd, Method: env.Method, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("marshal %s/%s: %w", env.Cmd, env.Method, err)
	}

	raw, err := c.bus.Request(ctx, c.channel, value)
	if err != nil {
		return nil, err
	}

	var rep reply
	if err := json.Unmarshal(raw, &rep); err != nil {
		return nil, fmt.Errorf("decode reply for %s/%s: %w", env.Cmd, env.Method, err)
	}
	if rep.Error != "" {
		return nil, &DownstreamError{Cmd: env.Cmd, Method: env.Method, Message: rep.Error}
	}
	return rep.Data, nil
}

// Emit publishes payload under env without awaiting downstream
// processing. Identical emits produce independent commands; the gateway
// never deduplicates.
func (c *Client) Emit(ctx context.Context, env Envelope, payload any) error {
	value, err := json.Marshal(message{Cmd: env.Cmd, Method: env.Method, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", env.Cmd, env.Method, err)
	}
	return c.bus.Publish(ctx, c.channel, value)
}
