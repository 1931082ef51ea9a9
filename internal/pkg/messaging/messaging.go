package messaging

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"
)

var (
	// ErrUnsupported is returned for features a driver cannot provide, such
	// as delayed delivery on NATS or Kafka.
	ErrUnsupported = errors.New("messaging: unsupported operation")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("messaging: client closed")
	// ErrHandlerRequired is returned when Consume gets a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
	// ErrDestinationRequired is returned for an empty topic or subject.
	ErrDestinationRequired = errors.New("messaging: topic is required")
)

// Messaging publishes and consumes.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

type Publisher interface {
	Publish(ctx context.Context, topic string, msg OutgoingMessage) (PublishResult, error)
}

type Consumer interface {
	Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one received message.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is what callers publish. Headers are dropped by drivers
// without header support (NSQ).
type OutgoingMessage struct {
	Body    []byte
	Key     []byte
	Headers map[string]string
	Delay   time.Duration
}

// PublishResult reports where the broker accepted the message.
type PublishResult struct {
	Topic     string
	Timestamp time.Time
}

// Message is a received message.
type Message interface {
	Body() []byte
	Key() []byte
	// Header returns the first value of key, or "".
	Header(key string) string
	ID() string
	Topic() string
	Timestamp() time.Time
	Ack(ctx context.Context) error
	// Nack asks for redelivery where the broker supports it.
	Nack(ctx context.Context) error
}

// reply makes Ack and Nack one shot per message.
type reply struct {
	done atomic.Bool
}

func (r *reply) answered() bool { return r.done.Load() }

// claim reports whether the caller is the first to respond.
func (r *reply) claim() bool { return !r.done.Swap(true) }
