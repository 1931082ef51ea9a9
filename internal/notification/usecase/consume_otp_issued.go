package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpauth/internal/shared/mailtemplate"
)

type ConsumeOTPIssuedInput struct {
	AccountID int64  `validate:"required,gt=0"`
	Email     string `validate:"required,email"`
	FullName  string `validate:"max=100"`
	Code      string `validate:"required,otp"`
	Purpose   string `validate:"omitempty,oneof=register sign_in resend"`
}

// ConsumeOTPIssued emails the code. Invalid payloads are dropped; a failed
// send is returned so the message is redelivered.
func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "account_id", in.AccountID, "error", err)
		return nil
	}

	msg, err := mailtemplate.RenderOTP(mailtemplate.OTPData{
		Email:        in.Email,
		FullName:     in.FullName,
		Code:         in.Code,
		Purpose:      in.Purpose,
		AppName:      s.cfg.GetString("app.name"),
		SupportEmail: s.cfg.GetString("mail.support"),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render otp email", "account_id", in.AccountID, "error", err)
		return nil
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "account_id", in.AccountID, "purpose", in.Purpose, "error", err)
		return err
	}

	slog.InfoContext(ctx, "otp email sent", "account_id", in.AccountID, "purpose", in.Purpose)

	return nil
}
