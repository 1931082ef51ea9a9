package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
)

type CreateAccountInput struct {
	FullName       string `validate:"required,min=1,max=100"`
	Email          string `validate:"required,email"`
	IdempotencyKey string `validate:"omitempty,max=128"`
}

// CreateAccount registers a new email and issues its first code. The
// returned account carries that code.
func (s *Usecase) CreateAccount(ctx context.Context, in CreateAccountInput) (*entity.Account, error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var account *entity.Account
	err := s.idempotent(ctx, "create_account", in.IdempotencyKey, msgCreateAccountFailed, func(ctx context.Context) error {
		acc, err := s.createAccount(ctx, in)
		if err != nil {
			return err
		}
		account = acc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (s *Usecase) createAccount(ctx context.Context, in CreateAccountInput) (*entity.Account, error) {
	_, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err == nil {
		return nil, errDuplicateAccount()
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err, msgCreateAccountFailed)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err, msgCreateAccountFailed)
	}

	account, err := s.repoDB.CreateAccount(ctx, entity.NewAccount{
		ID:        s.uid.Generate(),
		FullName:  in.FullName,
		Email:     in.Email,
		OTP:       code,
		CreatedAt: s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrConflict) {
		// lost the race against a concurrent registration of the same email
		return nil, errDuplicateAccount()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create account", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err, msgCreateAccountFailed)
	}

	s.notifyOTP(ctx, account, code, entity.OTPPurposeRegister)

	return account, nil
}
