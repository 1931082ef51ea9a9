package logger

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
)

// Logger notifies by writing the code to the log. The code attribute is
// masked by the log handler unless masking is turned off.
type Logger struct{}

func NewLogger() *Logger {
	return &Logger{}
}

func (*Logger) NotifyOTP(ctx context.Context, n entity.OTPNotification) error {
	slog.InfoContext(ctx, "sending otp",
		"account_id", n.AccountID,
		"email", n.Email,
		"purpose", n.Purpose.String(),
		"code", n.Code,
	)
	return nil
}
