package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/example/bookstore-gateway/internal/gateway"
)

const (
	correlationHeader = "correlation-id"
	replyToHeader     = "reply-to"
)

// Config describes the process-wide bus connection. One Bus is created
// at startup and shared by every concurrent request.
type Config struct {
	Brokers        []string
	Channels       []string
	ReplyTopic     string
	GroupID        string
	RequestTimeout time.Duration
}

// Bus implements gateway.Transport on Kafka. Writes go to one long-lived
// writer per channel; replies are consumed from a single reply topic and
// matched back to their caller by correlation id, so concurrent requests
// on the same channel never observe each other's replies.
type Bus struct {
	writers    map[string]*kafka.Writer
	reader     *kafka.Reader
	replyTopic string
	timeout    time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[string]chan []byte
}

func NewBus(cfg Config, logger *slog.Logger) *Bus {
	writers := make(map[string]*kafka.Writer, len(cfg.Channels))
	for _, channel := range cfg.Channels {
		writers[channel] = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        channel,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		}
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Bus{
		writers: writers,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Brokers,
			Topic:    cfg.ReplyTopic,
			GroupID:  cfg.GroupID,
			MinBytes: 1,
			MaxBytes: 10e6, // 10MB
		}),
		replyTopic: cfg.ReplyTopic,
		timeout:    timeout,
		logger:     logger,
		pending:    make(map[string]chan []byte),
	}
}

// Start consumes the reply topic until ctx is done. Replies without a
// pending caller are dropped; they belong to a request that already
// timed out or to another gateway instance's group.
func (b *Bus) Start(ctx context.Context) error {
	for {
		msg, err := b.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Error("reading reply", "error", err)
			continue
		}
		id := headerValue(msg, correlationHeader)
		if id == "" {
			b.logger.Warn("reply without correlation id dropped", "topic", b.replyTopic)
			continue
		}
		b.resolve(id, msg.Value)
	}
}

func (b *Bus) Publish(ctx context.Context, channel string, value []byte) error {
	writer, ok := b.writers[channel]
	if !ok {
		return fmt.Errorf("%w: %s", gateway.ErrUnknownChannel, channel)
	}
	if err := writer.WriteMessages(ctx, kafka.Message{Value: value, Time: time.Now()}); err != nil {
		return fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	return nil
}

func (b *Bus) Request(ctx context.Context, channel string, value []byte) ([]byte, error) {
	writer, ok := b.writers[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %s", gateway.ErrUnknownChannel, channel)
	}

	id := uuid.NewString()
	ch := b.register(id)
	defer b.unregister(id)

	msg := kafka.Message{
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: correlationHeader, Value: []byte(id)},
			{Key: replyToHeader, Value: []byte(b.replyTopic)},
		},
	}
	if err := writer.WriteMessages(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}

	// A dropped HTTP connection does not cancel the downstream call;
	// the reply is discarded when nobody is left waiting.
	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case raw := <-ch:
		return raw, nil
	case <-timer.C:
		return nil, gateway.ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *Bus) Close() error {
	var first error
	for _, w := range b.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	if err := b.reader.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

func (b *Bus) register(id string) chan []byte {
	ch := make(chan []byte, 1)
	b.mu.Lock()
	b.pending[id] = ch
	b.mu.Unlock()
	return ch
}

func (b *Bus) unregister(id string) {
	b.mu.Lock()
	delete(b.pending, id)
	b.mu.Unlock()
}

func (b *Bus) resolve(id string, value []byte) {
	b.mu.Lock()
	ch, ok := b.pending[id]
	b.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- value:
	default:
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
