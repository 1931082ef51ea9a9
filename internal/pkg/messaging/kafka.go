package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
	ErrKafkaGroupRequired   = errors.New("messaging: kafka consumer group is required")
)

type KafkaConfig struct {
	Brokers []string
	// Dialer is optional; kafka-go's default is used when nil.
	Dialer *kafka.Dialer
}

// Kafka keeps one writer per topic and one group reader per Consume call.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers map[*kafka.Reader]struct{}
	closed  bool
}

func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: cfg.Brokers,
		dialer:  cfg.Dialer,
		writers: make(map[string]*kafka.Writer),
		readers: make(map[*kafka.Reader]struct{}),
	}, nil
}

func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers, readers := k.writers, k.readers
	k.writers, k.readers = nil, nil
	k.mu.Unlock()

	var err error
	for r := range readers {
		err = errors.Join(err, r.Close())
	}
	for _, w := range writers {
		err = errors.Join(err, w.Close())
	}
	return err
}

func (k *Kafka) Publish(ctx context.Context, topic string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if topic == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	w, err := k.writer(topic)
	if err != nil {
		return PublishResult{}, err
	}

	km := kafka.Message{Key: msg.Key, Value: msg.Body, Time: time.Now()}
	for key, v := range msg.Headers {
		if key != "" {
			km.Headers = append(km.Headers, kafka.Header{Key: key, Value: []byte(v)})
		}
	}

	if err := w.WriteMessages(ctx, km); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return PublishResult{Topic: topic, Timestamp: km.Time}, nil
}

func (k *Kafka) writer(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, ErrClosed
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  k.brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Dialer:   k.dialer,
	})
	k.writers[topic] = w
	return w, nil
}

// Consume joins the group from WithGroup and blocks until ctx is done or
// the client is closed. Acking commits the message offset.
func (k *Kafka) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrDestinationRequired
	}
	if h == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrKafkaGroupRequired
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  co.group,
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})
	if err := k.track(reader); err != nil {
		return errors.Join(err, reader.Close())
	}

	queue := make(chan kafka.Message)
	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range queue {
				dispatch(ctx, DriverKafka, h, &kafkaMessage{reader: reader, msg: m}, co.autoAck)
			}
		})
	}

	var fetchErr error
	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			fetchErr = err
			break
		}
		queue <- m
	}
	close(queue)
	wg.Wait()

	var closeErr error
	if k.untrack(reader) {
		closeErr = reader.Close()
	}

	switch {
	case ctx.Err() != nil:
		return errors.Join(ctx.Err(), closeErr)
	case errors.Is(fetchErr, io.EOF):
		// reader closed by Close
		return closeErr
	default:
		return errors.Join(fmt.Errorf("messaging: kafka consume: %w", fetchErr), closeErr)
	}
}

func (k *Kafka) track(r *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return ErrClosed
	}
	k.readers[r] = struct{}{}
	return nil
}

// untrack reports whether r was still owned by k and therefore still open.
func (k *Kafka) untrack(r *kafka.Reader) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.readers[r]; !ok {
		return false
	}
	delete(k.readers, r)
	return true
}

type kafkaMessage struct {
	reply
	reader *kafka.Reader
	msg    kafka.Message
}

func (m *kafkaMessage) Body() []byte { return m.msg.Value }

func (m *kafkaMessage) Key() []byte { return m.msg.Key }

func (m *kafkaMessage) Header(key string) string {
	for _, h := range m.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (m *kafkaMessage) ID() string {
	return m.msg.Topic + "/" + strconv.Itoa(m.msg.Partition) + "/" + strconv.FormatInt(m.msg.Offset, 10)
}

func (m *kafkaMessage) Topic() string { return m.msg.Topic }

func (m *kafkaMessage) Timestamp() time.Time { return m.msg.Time }

func (m *kafkaMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.claim() {
		return nil
	}
	return m.reader.CommitMessages(ctx, m.msg)
}

// Nack leaves the offset uncommitted. Kafka has no per message redelivery,
// so a later commit on the partition still moves past it.
func (m *kafkaMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.claim()
	return nil
}
