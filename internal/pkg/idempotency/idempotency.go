// Package idempotency guards side effecting requests with a redis backed
// state machine keyed by a client supplied idempotency key.
//
// A key moves from absent to in_progress (held for the lock duration), then
// to completed or failed (held for the state TTL). Requests that find the
// key in any of those states are rejected without running.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("idempotency: operation already in progress")
	ErrAlreadyCompleted  = errors.New("idempotency: operation already completed")
	ErrAlreadyFailed     = errors.New("idempotency: operation already failed")
	ErrInvalidState      = errors.New("idempotency: invalid state")
)

// State is the value stored under a key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 10 * time.Minute
)

// Idempotency runs fn at most once per key.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// Option tunes a single Exec call.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in_progress marker survives a crash.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long completed and failed outcomes are remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// StateTracker implements Idempotency on redis.
type StateTracker struct {
	client redis.Cmdable
	prefix string
}

// New returns a tracker storing keys under "idempotency:<namespace>:".
func New(client redis.Cmdable, namespace string) *StateTracker {
	prefix := "idempotency:"
	if namespace != "" {
		prefix += namespace + ":"
	}
	return &StateTracker{client: client, prefix: prefix}
}

// Acquire sets the key to in_progress when absent and reports StateNone.
// Otherwise it reports the state already stored.
func (s *StateTracker) Acquire(ctx context.Context, key string, lock time.Duration) (State, error) {
	fk := s.prefix + key

	for range 2 {
		ok, err := s.client.SetNX(ctx, fk, string(StateInProgress), lock).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return StateNone, nil
		}

		val, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return "", err
		}

		switch st := State(val); st {
		case StateInProgress, StateCompleted, StateFailed:
			return st, nil
		default:
			return "", ErrInvalidState
		}
	}

	return "", ErrInvalidState
}

// MarkCompleted records a successful outcome.
func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, string(StateCompleted), ttl).Err()
}

// MarkFailed records a failed outcome.
func (s *StateTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, string(StateFailed), ttl).Err()
}

// Exec acquires key, runs fn and records its outcome. The error of fn is
// returned unchanged, joined with any failure to record the outcome.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}

	state, err := s.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		return errors.Join(err, s.MarkFailed(context.WithoutCancel(ctx), key, o.stateTTL))
	}

	return s.MarkCompleted(context.WithoutCancel(ctx), key, o.stateTTL)
}

// Passthrough runs fn on every call. It stands in when no redis is configured.
type Passthrough struct{}

func (Passthrough) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...Option) error {
	return fn(ctx)
}
