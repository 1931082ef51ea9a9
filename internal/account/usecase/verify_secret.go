package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
)

// VerifySecretInput is compared as given. An id that cannot exist is
// reported as AccountNotFound and any code other than the stored one as
// InvalidCode.
type VerifySecretInput struct {
	AccountID int64
	Code      string
}

type VerifySecretOutput struct {
	SessionID string
	ExpiresAt time.Time
}

// VerifySecret consumes the pending code of the account and mints a session.
// A code can mint at most one session.
func (s *Usecase) VerifySecret(ctx context.Context, in VerifySecretInput) (*VerifySecretOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifySecret")
	defer span.End()

	if in.AccountID <= 0 {
		return nil, errAccountNotFound()
	}

	account, err := s.repoDB.GetAccountByID(ctx, in.AccountID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errAccountNotFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", in.AccountID, "error", err)
		return nil, goerror.NewServer(err, msgVerifyFailed)
	}

	if !account.HasPendingOTP() || subtle.ConstantTimeCompare([]byte(*account.OTP), []byte(in.Code)) != 1 {
		slog.WarnContext(ctx, "otp code mismatch", "account_id", account.ID)
		return nil, errInvalidCode()
	}

	session, err := s.jwt.Generate(account.ID, account.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session", "account_id", account.ID, "error", err)
		return nil, goerror.NewServer(err, msgVerifyFailed)
	}

	cleared, err := s.repoDB.ClearAccountOTP(ctx, account.ID, in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo clear account otp", "account_id", account.ID, "error", err)
		return nil, goerror.NewServer(err, msgVerifyFailed)
	}
	if !cleared {
		slog.WarnContext(ctx, "otp code consumed concurrently", "account_id", account.ID)
		return nil, errInvalidCode()
	}

	return &VerifySecretOutput{
		SessionID: session,
		ExpiresAt: s.clock.Now().Add(s.cfg.GetMinute("jwt.ttl_minutes")),
	}, nil
}
