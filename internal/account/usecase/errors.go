package usecase

import (
	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
)

const (
	msgCreateAccountFailed = "Failed to create user"
	msgSignInFailed        = "Failed to sign in"
	msgVerifyFailed        = "Failed to verify OTP"
	msgSendOTPFailed       = "Failed to send OTP"
)

func errDuplicateAccount() error {
	return goerror.NewBusinessCause(entity.ErrDuplicateAccount, "Email already registered", goerror.CodeConflict)
}

func errAccountNotFound() error {
	return goerror.NewBusinessCause(entity.ErrAccountNotFound, "Account not found", goerror.CodeNotFound)
}

func errInvalidCode() error {
	return goerror.NewBusinessCause(entity.ErrInvalidCode, "Invalid OTP code", goerror.CodeUnauthorized)
}
