package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrPubSubProjectIDRequired = errors.New("messaging: pubsub project id is required")

type PubSubConfig struct {
	ProjectID string
	// Client is used as is when set; ClientOptions are then ignored.
	Client        *pubsub.Client
	ClientOptions []option.ClientOption
	// EnableOrdering publishes OutgoingMessage.Key as the ordering key.
	EnableOrdering bool
	// AutoCreate creates missing topics and subscriptions, for emulators
	// and local runs.
	AutoCreate bool
}

// PubSub maps headers to message attributes. Consume reads the subscription
// from WithSubscription, else WithGroup, else one named after the topic.
type PubSub struct {
	client     *pubsub.Client
	projectID  string
	ordering   bool
	autoCreate bool

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
	closed     bool
}

func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	client := cfg.Client
	if client == nil {
		c, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
		if err != nil {
			return nil, fmt.Errorf("messaging: pubsub new client: %w", err)
		}
		client = c
	}

	return &PubSub{
		client:     client,
		projectID:  cfg.ProjectID,
		ordering:   cfg.EnableOrdering,
		autoCreate: cfg.AutoCreate,
		publishers: make(map[string]*pubsub.Publisher),
	}, nil
}

// Close flushes pending publishes, then closes the client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pubs := p.publishers
	p.publishers = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}
	return p.client.Close()
}

func (p *PubSub) Publish(ctx context.Context, topic string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if topic == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	pub, err := p.publisher(ctx, topic)
	if err != nil {
		return PublishResult{}, err
	}

	pm := &pubsub.Message{Data: msg.Body}
	for k, v := range msg.Headers {
		if k == "" {
			continue
		}
		if pm.Attributes == nil {
			pm.Attributes = make(map[string]string, len(msg.Headers))
		}
		pm.Attributes[k] = v
	}
	if p.ordering {
		pm.OrderingKey = string(msg.Key)
	}

	if _, err := pub.Publish(ctx, pm).Get(ctx); err != nil {
		if pm.OrderingKey != "" {
			pub.ResumePublish(pm.OrderingKey)
		}
		return PublishResult{}, fmt.Errorf("messaging: pubsub publish: %w", err)
	}

	return PublishResult{Topic: topic, Timestamp: time.Now()}, nil
}

// Consume receives from the subscription and blocks until ctx is done.
func (p *PubSub) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrDestinationRequired
	}
	if h == nil {
		return ErrHandlerRequired
	}
	if p.isClosed() {
		return ErrClosed
	}

	co := newConsumeOptions(opts...)
	subscription := pubSubSubscription(topic, co)

	if p.autoCreate {
		if err := p.EnsureSubscription(ctx, topic, subscription); err != nil {
			return err
		}
	}

	sub := p.client.Subscriber(subscription)
	sub.ReceiveSettings.NumGoroutines = co.concurrency
	sub.ReceiveSettings.MaxOutstandingMessages = co.concurrency
	if co.maxInFlight > 0 {
		sub.ReceiveSettings.MaxOutstandingMessages = co.maxInFlight
	}

	err := sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		dispatch(ctx, DriverPubSub, h, &pubsubMessage{msg: m, topic: topic}, co.autoAck)
	})
	if err != nil {
		return fmt.Errorf("messaging: pubsub receive %s: %w", subscription, err)
	}
	return ctx.Err()
}

// EnsureTopic creates topic unless it exists.
func (p *PubSub) EnsureTopic(ctx context.Context, topic string) error {
	_, err := p.client.TopicAdminClient.CreateTopic(ctx, &pubsubpb.Topic{Name: p.topicName(topic)})
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("messaging: pubsub create topic %s: %w", topic, err)
	}
	return nil
}

// EnsureSubscription creates topic and a pull subscription on it unless
// they exist.
func (p *PubSub) EnsureSubscription(ctx context.Context, topic, subscription string) error {
	if err := p.EnsureTopic(ctx, topic); err != nil {
		return err
	}

	_, err := p.client.SubscriptionAdminClient.CreateSubscription(ctx, &pubsubpb.Subscription{
		Name:  fmt.Sprintf("projects/%s/subscriptions/%s", p.projectID, subscription),
		Topic: p.topicName(topic),
	})
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("messaging: pubsub create subscription %s: %w", subscription, err)
	}
	return nil
}

func (p *PubSub) topicName(topic string) string {
	return fmt.Sprintf("projects/%s/topics/%s", p.projectID, topic)
}

func (p *PubSub) publisher(ctx context.Context, topic string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	pub, ok := p.publishers[topic]
	p.mu.Unlock()
	if ok {
		return pub, nil
	}

	if p.autoCreate {
		if err := p.EnsureTopic(ctx, topic); err != nil {
			return nil, err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if pub, ok := p.publishers[topic]; ok {
		return pub, nil
	}
	pub = p.client.Publisher(topic)
	pub.EnableMessageOrdering = p.ordering
	p.publishers[topic] = pub
	return pub, nil
}

func (p *PubSub) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func pubSubSubscription(topic string, co consumeOptions) string {
	switch {
	case co.subscription != "":
		return co.subscription
	case co.group != "":
		return co.group
	default:
		return topic
	}
}

type pubsubMessage struct {
	reply
	msg   *pubsub.Message
	topic string
}

func (m *pubsubMessage) Body() []byte { return m.msg.Data }

func (m *pubsubMessage) Key() []byte {
	if m.msg.OrderingKey == "" {
		return nil
	}
	return []byte(m.msg.OrderingKey)
}

func (m *pubsubMessage) Header(key string) string { return m.msg.Attributes[key] }

func (m *pubsubMessage) ID() string { return m.msg.ID }

func (m *pubsubMessage) Topic() string { return m.topic }

func (m *pubsubMessage) Timestamp() time.Time { return m.msg.PublishTime }

func (m *pubsubMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.claim() {
		m.msg.Ack()
	}
	return nil
}

func (m *pubsubMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.claim() {
		m.msg.Nack()
	}
	return nil
}
