package email

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func (*fakeMail) Close() error { return nil }

func TestNotifyOTP(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: Acme\nmail:\n  support: help@acme.test\n"))
	require.NoError(t, err)

	fm := &fakeMail{}
	e := NewEmail(fm, cfg)

	require.NoError(t, e.NotifyOTP(context.Background(), entity.OTPNotification{
		Email:    "ada@example.com",
		FullName: "Ada",
		Code:     "123456",
		Purpose:  entity.OTPPurposeSignIn,
	}))

	require.Len(t, fm.sent, 1)
	assert.Equal(t, []string{"ada@example.com"}, fm.sent[0].To)
	assert.Equal(t, "Your Acme sign-in code", fm.sent[0].Subject)
	assert.Contains(t, fm.sent[0].TextBody, "123456")
	assert.Contains(t, fm.sent[0].TextBody, "help@acme.test")

	fm.err = errors.New("smtp down")
	assert.Error(t, e.NotifyOTP(context.Background(), entity.OTPNotification{Email: "ada@example.com"}))
}
