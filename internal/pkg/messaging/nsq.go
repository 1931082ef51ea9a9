package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	ErrNSQChannelRequired       = errors.New("messaging: nsq channel is required")
	ErrNSQProducerAddrRequired  = errors.New("messaging: nsq producer address is required")
	ErrNSQConsumerAddrsRequired = errors.New("messaging: nsq nsqd or lookupd addresses are required")
)

type NSQConfig struct {
	// ProducerAddr is the nsqd TCP address used for publishing.
	ProducerAddr string
	// Consumers connect through lookupd when LookupdAddrs is set, else
	// directly to NSQDAddrs.
	NSQDAddrs    []string
	LookupdAddrs []string
}

// NSQ has no message headers; Publish drops OutgoingMessage.Headers.
type NSQ struct {
	producer *nsq.Producer
	nsqd     []string
	lookupd  []string

	mu        sync.Mutex
	consumers map[*nsq.Consumer]struct{}
	closed    bool
}

func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	n := &NSQ{
		nsqd:      cfg.NSQDAddrs,
		lookupd:   cfg.LookupdAddrs,
		consumers: make(map[*nsq.Consumer]struct{}),
	}

	if cfg.ProducerAddr != "" {
		p, err := nsq.NewProducer(cfg.ProducerAddr, nsq.NewConfig())
		if err != nil {
			return nil, fmt.Errorf("messaging: nsq new producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)
		n.producer = p
	}

	return n, nil
}

// Close stops every consumer, waits for them, then stops the producer.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := make([]*nsq.Consumer, 0, len(n.consumers))
	for c := range n.consumers {
		consumers = append(consumers, c)
	}
	n.mu.Unlock()

	for _, c := range consumers {
		c.Stop()
		<-c.StopChan
	}
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

func (n *NSQ) Publish(ctx context.Context, topic string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if topic == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if n.producer == nil {
		return PublishResult{}, ErrNSQProducerAddrRequired
	}

	var err error
	if msg.Delay > 0 {
		err = n.producer.DeferredPublish(topic, msg.Delay, msg.Body)
	} else {
		err = n.producer.Publish(topic, msg.Body)
	}
	if err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return PublishResult{Topic: topic, Timestamp: time.Now()}, nil
}

// Consume reads topic on the channel from WithChannel and blocks until ctx
// is done or the client is closed.
func (n *NSQ) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrDestinationRequired
	}
	if h == nil {
		return ErrHandlerRequired
	}
	if len(n.nsqd) == 0 && len(n.lookupd) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	co := newConsumeOptions(opts...)
	if co.channel == "" {
		return ErrNSQChannelRequired
	}

	cfg := nsq.NewConfig()
	cfg.MaxInFlight = max(co.maxInFlight, co.concurrency)

	consumer, err := nsq.NewConsumer(topic, co.channel, cfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)
	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		m.DisableAutoResponse()
		dispatch(ctx, DriverNSQ, h, &nsqMessage{topic: topic, msg: m}, co.autoAck)
		return nil
	}), co.concurrency)

	if err := n.track(consumer); err != nil {
		consumer.Stop()
		return err
	}
	defer n.untrack(consumer)

	if len(n.lookupd) > 0 {
		err = consumer.ConnectToNSQLookupds(n.lookupd)
	} else {
		err = consumer.ConnectToNSQDs(n.nsqd)
	}
	if err != nil {
		consumer.Stop()
		<-consumer.StopChan
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		consumer.Stop()
		<-consumer.StopChan
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}

func (n *NSQ) track(c *nsq.Consumer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrClosed
	}
	n.consumers[c] = struct{}{}
	return nil
}

func (n *NSQ) untrack(c *nsq.Consumer) {
	n.mu.Lock()
	delete(n.consumers, c)
	n.mu.Unlock()
}

type nsqMessage struct {
	reply
	topic string
	msg   *nsq.Message
}

func (m *nsqMessage) Body() []byte { return m.msg.Body }

func (m *nsqMessage) Key() []byte { return nil }

func (m *nsqMessage) Header(string) string { return "" }

func (m *nsqMessage) ID() string { return string(m.msg.ID[:]) }

func (m *nsqMessage) Topic() string { return m.topic }

func (m *nsqMessage) Timestamp() time.Time { return time.Unix(0, m.msg.Timestamp) }

func (m *nsqMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.claim() {
		m.msg.Finish()
	}
	return nil
}

// Nack requeues with nsqd's default backoff.
func (m *nsqMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.claim() {
		m.msg.Requeue(-1)
	}
	return nil
}
