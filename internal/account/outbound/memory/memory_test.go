package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := New()
	now := time.Now()

	acc, err := m.CreateAccount(ctx, entity.NewAccount{ID: 1, FullName: "Ada", Email: "ada@example.com", OTP: "111111", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "111111", *acc.OTP)

	_, err = m.CreateAccount(ctx, entity.NewAccount{ID: 2, FullName: "Ada", Email: "ada@example.com", OTP: "222222"})
	assert.ErrorIs(t, err, goerror.ErrConflict)

	// returned values are copies
	*acc.OTP = "000000"
	got, err := m.GetAccountByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "111111", *got.OTP)

	got, err = m.UpdateAccountOTPByEmail(ctx, "ada@example.com", "333333")
	require.NoError(t, err)
	assert.Equal(t, "333333", *got.OTP)

	_, err = m.UpdateAccountOTPByEmail(ctx, "nobody@example.com", "333333")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	ok, err := m.ClearAccountOTP(ctx, 1, "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.ClearAccountOTP(ctx, 1, "333333")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = m.GetAccountByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Nil(t, got.OTP)

	ok, err = m.ClearAccountOTP(ctx, 1, "333333")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.GetAccountByID(ctx, 99)
	assert.ErrorIs(t, err, goerror.ErrNotFound)
	_, err = m.GetAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestMemory_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	m := New()

	var (
		wg      sync.WaitGroup
		created atomic.Int32
	)
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.CreateAccount(ctx, entity.NewAccount{ID: int64(i + 1), FullName: "Ada", Email: "ada@example.com", OTP: "123456"})
			if err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
}
