package usecase

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
	"github.com/shandysiswandi/otpauth/internal/pkg/idempotency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRedisIdempotency(t *testing.T) (fixtureOption, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return func(d *Dependency) { d.Idempotency = idempotency.New(client, "account") }, mr
}

func TestCreateAccount_Idempotency(t *testing.T) {
	ctx := context.Background()
	opt, mr := withRedisIdempotency(t)
	f := newFixture(t, opt)

	in := CreateAccountInput{FullName: "Ada", Email: "ada@example.com", IdempotencyKey: "req-1"}

	_, err := f.uc.CreateAccount(ctx, in)
	require.NoError(t, err)

	_, err = f.uc.CreateAccount(ctx, in)
	assertGoError(t, err, goerror.CodeConflict, "Request already processed")
	assert.Len(t, f.notifier.sent, 1)

	got, err := mr.Get("idempotency:account:create_account:req-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", got)

	// a fresh key reaches the usecase and hits the duplicate check
	in.IdempotencyKey = "req-2"
	_, err = f.uc.CreateAccount(ctx, in)
	assert.ErrorIs(t, err, entity.ErrDuplicateAccount)

	_, err = f.uc.CreateAccount(ctx, in)
	assertGoError(t, err, goerror.CodeConflict, "Previous request failed")
}

func TestSendEmailOTP_Idempotency(t *testing.T) {
	ctx := context.Background()
	opt, mr := withRedisIdempotency(t)
	f := newFixture(t, opt)

	_, err := f.uc.CreateAccount(ctx, CreateAccountInput{FullName: "Ada", Email: "ada@example.com", IdempotencyKey: "req-1"})
	require.NoError(t, err)

	t.Run("in progress", func(t *testing.T) {
		require.NoError(t, mr.Set("idempotency:account:send_otp:busy", "in_progress"))

		_, err := f.uc.SendEmailOTP(ctx, SendOTPInput{Email: "ada@example.com", IdempotencyKey: "busy"})
		assertGoError(t, err, goerror.CodeConflict, "Request already in progress")
	})

	t.Run("keys are scoped per operation", func(t *testing.T) {
		_, err := f.uc.SendEmailOTP(ctx, SendOTPInput{Email: "ada@example.com", IdempotencyKey: "req-1"})
		require.NoError(t, err)
	})

	t.Run("redis unavailable", func(t *testing.T) {
		mr.SetError("connection refused")
		t.Cleanup(func() { mr.SetError("") })

		_, err := f.uc.SendEmailOTP(ctx, SendOTPInput{Email: "ada@example.com", IdempotencyKey: "req-3"})
		assertGoError(t, err, goerror.CodeInternal, "Failed to send OTP")
	})

	t.Run("validation runs before the key is taken", func(t *testing.T) {
		_, err := f.uc.SendEmailOTP(ctx, SendOTPInput{Email: "bad", IdempotencyKey: "req-4"})
		assertGoError(t, err, goerror.CodeInvalidInput, "Validation error")
		assert.False(t, mr.Exists("idempotency:account:send_otp:req-4"))
	})
}
