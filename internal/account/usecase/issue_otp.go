package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
)

// issueOTP overwrites the code of the account owning email and notifies it.
func (s *Usecase) issueOTP(ctx context.Context, email string, purpose entity.OTPPurpose, failMsg string) (*entity.Account, string, error) {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "email", email, "error", err)
		return nil, "", goerror.NewServer(err, failMsg)
	}

	account, err := s.repoDB.UpdateAccountOTPByEmail(ctx, email, code)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, "", errAccountNotFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update account otp by email", "email", email, "error", err)
		return nil, "", goerror.NewServer(err, failMsg)
	}

	s.notifyOTP(ctx, account, code, purpose)

	return account, code, nil
}

func (s *Usecase) notifyOTP(ctx context.Context, account *entity.Account, code string, purpose entity.OTPPurpose) {
	err := s.notifier.NotifyOTP(ctx, entity.OTPNotification{
		AccountID: account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		Code:      code,
		Purpose:   purpose,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to notify otp", "account_id", account.ID, "purpose", purpose.String(), "error", err)
	}
}
