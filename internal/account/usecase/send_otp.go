package usecase

import (
	"context"
	"strings"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
)

type SendOTPInput struct {
	Email          string `validate:"required,email"`
	IdempotencyKey string `validate:"omitempty,max=128"`
}

type SendOTPOutput struct {
	AccountID int64
	Code      string
}

// SendEmailOTP rotates the code of the account and sends it. Every call
// replaces the previous code.
func (s *Usecase) SendEmailOTP(ctx context.Context, in SendOTPInput) (*SendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "SendEmailOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var out *SendOTPOutput
	err := s.idempotent(ctx, "send_otp", in.IdempotencyKey, msgSendOTPFailed, func(ctx context.Context) error {
		account, code, err := s.issueOTP(ctx, in.Email, entity.OTPPurposeResend, msgSendOTPFailed)
		if err != nil {
			return err
		}
		out = &SendOTPOutput{AccountID: account.ID, Code: code}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
