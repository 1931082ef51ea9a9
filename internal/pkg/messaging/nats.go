package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

var ErrNATSURLRequired = errors.New("messaging: nats url is required")

type NATSConfig struct {
	URL string
	// Name identifies the connection in server monitoring.
	Name    string
	Options []nats.Option
}

// NATS publishes with headers and consumes through queue subscriptions.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	subs   map[*nats.Subscription]struct{}
	closed bool
}

func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	opts := cfg.Options
	if cfg.Name != "" {
		opts = append([]nats.Option{nats.Name(cfg.Name)}, opts...)
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn, subs: make(map[*nats.Subscription]struct{})}, nil
}

// Close drains the connection, letting in flight handlers finish.
func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	n.mu.Unlock()

	err := n.conn.Drain()
	n.conn.Close()
	return err
}

func (n *NATS) Publish(ctx context.Context, subject string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if subject == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	nm := nats.NewMsg(subject)
	nm.Data = msg.Body
	for k, v := range msg.Headers {
		if k != "" {
			nm.Header.Set(k, v)
		}
	}

	if err := n.conn.PublishMsg(nm); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.Flush(); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats flush: %w", err)
	}

	return PublishResult{Topic: subject, Timestamp: time.Now()}, nil
}

// Consume subscribes subject in the queue group from WithQueueGroup and
// blocks until ctx is done.
func (n *NATS) Consume(ctx context.Context, subject string, h Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if subject == "" {
		return ErrDestinationRequired
	}
	if h == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)
	queue := make(chan *nats.Msg, co.concurrency)

	// gate keeps the subscription callback from sending on a closed queue.
	var gate sync.RWMutex
	stopped := false

	sub, err := n.conn.QueueSubscribe(subject, co.queueGroup, func(m *nats.Msg) {
		gate.RLock()
		defer gate.RUnlock()
		if stopped {
			return
		}
		select {
		case queue <- m:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range queue {
				dispatch(ctx, DriverNATS, h, &natsMessage{msg: m, receivedAt: time.Now()}, co.autoAck)
			}
		})
	}

	stop := func() error {
		uerr := sub.Unsubscribe()
		gate.Lock()
		stopped = true
		close(queue)
		gate.Unlock()
		wg.Wait()
		n.untrack(sub)
		return uerr
	}

	if err := n.track(sub); err != nil {
		return errors.Join(err, stop())
	}
	if err := n.conn.Flush(); err != nil {
		return errors.Join(fmt.Errorf("messaging: nats flush: %w", err), stop())
	}

	<-ctx.Done()

	uerr := stop()
	if errors.Is(uerr, nats.ErrConnectionClosed) || errors.Is(uerr, nats.ErrBadSubscription) {
		uerr = nil
	}
	return errors.Join(ctx.Err(), uerr)
}

func (n *NATS) track(sub *nats.Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrClosed
	}
	n.subs[sub] = struct{}{}
	return nil
}

func (n *NATS) untrack(sub *nats.Subscription) {
	n.mu.Lock()
	delete(n.subs, sub)
	n.mu.Unlock()
}

type natsMessage struct {
	reply
	msg        *nats.Msg
	receivedAt time.Time
}

func (m *natsMessage) Body() []byte { return m.msg.Data }

func (m *natsMessage) Key() []byte { return nil }

func (m *natsMessage) Header(key string) string { return m.msg.Header.Get(key) }

func (m *natsMessage) ID() string { return m.msg.Header.Get(nats.MsgIdHdr) }

func (m *natsMessage) Topic() string { return m.msg.Subject }

func (m *natsMessage) Timestamp() time.Time { return m.receivedAt }

// Ack and Nack only matter for JetStream deliveries; core NATS has nothing to confirm.
func (m *natsMessage) Ack(ctx context.Context) error {
	return m.respond(ctx, m.msg.Ack)
}

func (m *natsMessage) Nack(ctx context.Context) error {
	return m.respond(ctx, m.msg.Nak)
}

func (m *natsMessage) respond(ctx context.Context, fn func(...nats.AckOpt) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.claim() {
		return nil
	}
	if err := fn(); err != nil && !errors.Is(err, nats.ErrMsgNoReply) && !errors.Is(err, nats.ErrMsgNotBound) {
		return err
	}
	return nil
}
