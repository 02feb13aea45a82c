package gatewaytest

import (
	"context"
	"encoding/json"
	"sync"
)

// Sent is one message a FakeTransport observed.
type Sent struct {
	Channel string
	Value   []byte
}

// Decode unmarshals the wire message into v.
func (s Sent) Decode(v any) error {
	return json.Unmarshal(s.Value, v)
}

// FakeTransport records every Publish and Request and answers requests
// through ReplyFunc. Safe for concurrent use.
type FakeTransport struct {
	mu        sync.Mutex
	Published []Sent
	Requests  []Sent

	// ReplyFunc answers a Request. Defaults to an empty reply.
	ReplyFunc func(channel string, value []byte) ([]byte, error)
}

func (f *FakeTransport) Publish(_ context.Context, channel string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Published = append(f.Published, Sent{Channel: channel, Value: value})
	return nil
}

func (f *FakeTransport) Request(_ context.Context, channel string, value []byte) ([]byte, error) {
	f.mu.Lock()
	f.Requests = append(f.Requests, Sent{Channel: channel, Value: value})
	fn := f.ReplyFunc
	f.mu.Unlock()

	if fn == nil {
		return Reply(nil), nil
	}
	return fn(channel, value)
}

// Calls reports how many messages the transport saw in total.
func (f *FakeTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Published) + len(f.Requests)
}

// Reply builds a successful reply envelope carrying data.
func Reply(data any) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	out, err := json.Marshal(map[string]json.RawMessage{"data": raw})
	if err != nil {
		panic(err)
	}
	return out
}

// ReplyError builds a reply envelope signalling downstream failure.
func ReplyError(message string) []byte {
	out, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		panic(err)
	}
	return out
}
