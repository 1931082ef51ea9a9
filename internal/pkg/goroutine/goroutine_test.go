package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_CollectsErrors(t *testing.T) {
	m := NewManager(4)
	boom := errors.New("boom")

	var ran atomic.Int32
	assert.True(t, m.Go(context.Background(), func(context.Context) error {
		ran.Add(1)
		return nil
	}))
	assert.True(t, m.Go(context.Background(), func(context.Context) error {
		ran.Add(1)
		return boom
	}))

	err := m.Wait()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), ran.Load())
}

func TestManager_ClosedAfterWait(t *testing.T) {
	m := NewManager(1)
	assert.NoError(t, m.Wait())
	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
}

func TestManager_LimitReached(t *testing.T) {
	m := NewManager(1)
	release := make(chan struct{})

	assert.True(t, m.Go(context.Background(), func(context.Context) error {
		<-release
		return nil
	}))
	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))

	close(release)
	assert.NoError(t, m.Wait())
}

func TestManager_RecoversPanic(t *testing.T) {
	m := NewManager(1)
	assert.True(t, m.Go(context.Background(), func(context.Context) error {
		panic("kaboom")
	}))
	assert.NoError(t, m.Wait())
}

func TestManager_CanceledContext(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	m.Go(ctx, func(context.Context) error {
		ran.Store(true)
		return nil
	})
	assert.NoError(t, m.Wait())
	assert.False(t, ran.Load())
}

func TestManager_Nil(t *testing.T) {
	var m *Manager
	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
	assert.NoError(t, m.Wait())
}
