package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessage struct {
	reply
	acks  int
	nacks int
}

func (m *fakeMessage) Body() []byte { return []byte(`{}`) }
func (m *fakeMessage) Key() []byte { return nil }
func (m *fakeMessage) Header(string) string { return "" }
func (m *fakeMessage) ID() string { return "1" }
func (m *fakeMessage) Topic() string { return "account_otp_issued" }
func (m *fakeMessage) Timestamp() time.Time { return time.Time{} }

func (m *fakeMessage) Ack(context.Context) error {
	if m.claim() {
		m.acks++
	}
	return nil
}

func (m *fakeMessage) Nack(context.Context) error {
	if m.claim() {
		m.nacks++
	}
	return nil
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name      string
		handler   Handler
		autoAck   bool
		wantAcks  int
		wantNacks int
	}{
		{
			name:     "ack on success",
			handler:  func(context.Context, Message) error { return nil },
			autoAck:  true,
			wantAcks: 1,
		},
		{
			name:      "nack on error",
			handler:   func(context.Context, Message) error { return errors.New("boom") },
			autoAck:   true,
			wantNacks: 1,
		},
		{
			name:      "nack on panic",
			handler:   func(context.Context, Message) error { panic("boom") },
			autoAck:   true,
			wantNacks: 1,
		},
		{
			name:    "manual ack mode",
			handler: func(context.Context, Message) error { return nil },
		},
		{
			name: "handler responded itself",
			handler: func(ctx context.Context, m Message) error {
				_ = m.Nack(ctx)
				return nil
			},
			autoAck:   true,
			wantNacks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &fakeMessage{}
			dispatch(context.Background(), "fake", tt.handler, msg, tt.autoAck)

			assert.Equal(t, tt.wantAcks, msg.acks)
			assert.Equal(t, tt.wantNacks, msg.nacks)
		})
	}
}

func TestSafeHandle_Panic(t *testing.T) {
	err := safeHandle(context.Background(), "fake", func(context.Context, Message) error { panic("bad") }, &fakeMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in fake handler: bad")
}

func TestNewConsumeOptions(t *testing.T) {
	co := newConsumeOptions(
		nil,
		WithConcurrency(4),
		WithAutoAck(true),
		WithGroup("g"),
		WithChannel("c"),
		WithQueueGroup("q"),
		WithMaxInFlight(8),
		WithSubscription("s"),
	)

	assert.Equal(t, consumeOptions{
		concurrency:  4,
		autoAck:      true,
		group:        "g",
		channel:      "c",
		queueGroup:   "q",
		subscription: "s",
		maxInFlight:  8,
	}, co)

	assert.Equal(t, 1, newConsumeOptions(WithConcurrency(-3)).concurrency)
}

func TestNewFromDriver(t *testing.T) {
	ctx := context.Background()

	_, err := NewFromDriver(ctx, "rabbit", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = NewFromDriver(ctx, "nats", FactoryOptions{})
	assert.ErrorIs(t, err, ErrNATSURLRequired)

	_, err = NewFromDriver(ctx, " Kafka ", FactoryOptions{})
	assert.ErrorIs(t, err, ErrKafkaBrokersRequired)

	_, err = NewFromDriver(ctx, "PubSub", FactoryOptions{})
	assert.ErrorIs(t, err, ErrPubSubProjectIDRequired)

	m, err := NewFromDriver(ctx, "nsq", FactoryOptions{})
	require.NoError(t, err)
	assert.NoError(t, m.Close())
}

func TestNSQ_Validation(t *testing.T) {
	ctx := context.Background()
	handler := func(context.Context, Message) error { return nil }

	n, err := NewNSQ(NSQConfig{})
	require.NoError(t, err)

	_, err = n.Publish(ctx, "topic", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrNSQProducerAddrRequired)

	_, err = n.Publish(ctx, "", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrDestinationRequired)

	assert.ErrorIs(t, n.Consume(ctx, "topic", handler), ErrNSQConsumerAddrsRequired)

	n, err = NewNSQ(NSQConfig{NSQDAddrs: []string{"127.0.0.1:4150"}})
	require.NoError(t, err)
	assert.ErrorIs(t, n.Consume(ctx, "topic", handler), ErrNSQChannelRequired)
	assert.ErrorIs(t, n.Consume(ctx, "topic", nil, WithChannel("c")), ErrHandlerRequired)
}

func TestKafka_Validation(t *testing.T) {
	ctx := context.Background()
	handler := func(context.Context, Message) error { return nil }

	k, err := NewKafka(KafkaConfig{Brokers: []string{"127.0.0.1:9092"}})
	require.NoError(t, err)

	assert.ErrorIs(t, k.Consume(ctx, "topic", handler), ErrKafkaGroupRequired)
	assert.ErrorIs(t, k.Consume(ctx, "", handler, WithGroup("g")), ErrDestinationRequired)

	_, err = k.Publish(ctx, "topic", OutgoingMessage{Delay: time.Second})
	assert.ErrorIs(t, err, ErrUnsupported)

	require.NoError(t, k.Close())
	_, err = k.Publish(ctx, "topic", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	k, err := NewKafka(KafkaConfig{Brokers: []string{"127.0.0.1:9092"}})
	require.NoError(t, err)

	_, err = k.Publish(ctx, "topic", OutgoingMessage{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, k.Consume(ctx, "topic", nil), context.Canceled)
}
