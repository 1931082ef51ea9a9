package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyOTP(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	err := NewLogger().NotifyOTP(context.Background(), entity.OTPNotification{
		AccountID: 7,
		Email:     "ada@example.com",
		Code:      "123456",
		Purpose:   entity.OTPPurposeRegister,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"msg":"sending otp"`)
	assert.Contains(t, buf.String(), `"email":"ada@example.com"`)
	assert.Contains(t, buf.String(), `"purpose":"register"`)
	assert.Contains(t, buf.String(), `"code":"123456"`)
}
