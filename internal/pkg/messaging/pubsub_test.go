package messaging

import (
	"context"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const testProject = "otpauth-test"

func newTestPubSub(t *testing.T, autoCreate bool) *PubSub {
	t.Helper()

	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	client, err := pubsub.NewClient(context.Background(), testProject, option.WithGRPCConn(conn))
	require.NoError(t, err)

	p, err := NewPubSub(context.Background(), PubSubConfig{
		ProjectID:  testProject,
		Client:     client,
		AutoCreate: autoCreate,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	return p
}

func TestPubSub_Validation(t *testing.T) {
	ctx := context.Background()
	handler := func(context.Context, Message) error { return nil }

	_, err := NewPubSub(ctx, PubSubConfig{})
	assert.ErrorIs(t, err, ErrPubSubProjectIDRequired)

	p := newTestPubSub(t, false)

	_, err = p.Publish(ctx, "", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrDestinationRequired)

	_, err = p.Publish(ctx, "account_otp_issued", OutgoingMessage{Delay: time.Second})
	assert.ErrorIs(t, err, ErrUnsupported)

	assert.ErrorIs(t, p.Consume(ctx, "", handler), ErrDestinationRequired)
	assert.ErrorIs(t, p.Consume(ctx, "account_otp_issued", nil), ErrHandlerRequired)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err = p.Publish(ctx, "account_otp_issued", OutgoingMessage{Body: []byte(`{}`)})
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, p.Consume(ctx, "account_otp_issued", handler), ErrClosed)
}

func TestPubSub_PublishConsume(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p := newTestPubSub(t, false)
	require.NoError(t, p.EnsureSubscription(ctx, "account_otp_issued", "account_otp_issued_notification"))
	// already existing resources are not an error
	require.NoError(t, p.EnsureSubscription(ctx, "account_otp_issued", "account_otp_issued_notification"))

	var (
		mu  sync.Mutex
		got []Message
	)
	handler := func(_ context.Context, msg Message) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, msg)
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- p.Consume(ctx, "account_otp_issued", handler,
			WithSubscription("account_otp_issued_notification"), WithAutoAck(true))
	}()

	res, err := p.Publish(ctx, "account_otp_issued", OutgoingMessage{
		Body:    []byte(`{"account_id":1,"email":"ada@example.com"}`),
		Key:     []byte("ada@example.com"),
		Headers: map[string]string{"cID": "c-1", "": "dropped"},
	})
	require.NoError(t, err)
	assert.Equal(t, "account_otp_issued", res.Topic)
	assert.False(t, res.Timestamp.IsZero())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	msg := got[0]
	mu.Unlock()

	assert.JSONEq(t, `{"account_id":1,"email":"ada@example.com"}`, string(msg.Body()))
	assert.Equal(t, "c-1", msg.Header("cID"))
	assert.Empty(t, msg.Header(""))
	assert.Equal(t, "account_otp_issued", msg.Topic())
	assert.NotEmpty(t, msg.ID())
	assert.False(t, msg.Timestamp().IsZero())
	// ordering is off so the key is not carried
	assert.Nil(t, msg.Key())

	// answered by auto ack, a second response is a no-op
	assert.NoError(t, msg.Ack(ctx))
	assert.NoError(t, msg.Nack(ctx))

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestPubSub_AutoCreate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p := newTestPubSub(t, true)

	received := make(chan string, 1)
	handler := func(_ context.Context, msg Message) error {
		select {
		case received <- msg.Header("cID"):
		default:
		}
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- p.Consume(ctx, "account_otp_issued", handler, WithGroup("notification"), WithAutoAck(true))
	}()

	// the subscription is created by Consume; publish until it sees a message
	require.Eventually(t, func() bool {
		if _, err := p.Publish(ctx, "account_otp_issued", OutgoingMessage{
			Body:    []byte(`{}`),
			Headers: map[string]string{"cID": "c-2"},
		}); err != nil {
			return false
		}
		select {
		case cID := <-received:
			return cID == "c-2"
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}
