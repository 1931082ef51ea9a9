package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPingWithRetry(t *testing.T) {
	boom := errors.New("connection refused")

	calls := 0
	err := pingWithRetry(context.Background(), "db", 3, func(context.Context) error {
		calls++
		if calls < 3 {
			return boom
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = pingWithRetry(context.Background(), "db", 1, func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
