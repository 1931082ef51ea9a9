package usecase

import (
	"context"
	"strings"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
)

type SignInInput struct {
	Email string `validate:"required,email"`
}

// SignIn starts a challenge for an existing account and returns the account
// with the new code.
func (s *Usecase) SignIn(ctx context.Context, in SignInInput) (*entity.Account, error) {
	ctx, span := s.startSpan(ctx, "SignIn")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	account, _, err := s.issueOTP(ctx, in.Email, entity.OTPPurposeSignIn, msgSignInFailed)
	if err != nil {
		return nil, err
	}

	return account, nil
}
