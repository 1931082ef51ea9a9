package inbound

import (
	"context"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/account/usecase"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/router"
)

const headerIdempotencyKey = "Idempotency-Key"

type uc interface {
	CreateAccount(ctx context.Context, in usecase.CreateAccountInput) (*entity.Account, error)
	SignIn(ctx context.Context, in usecase.SignInInput) (*entity.Account, error)
	SendEmailOTP(ctx context.Context, in usecase.SendOTPInput) (*usecase.SendOTPOutput, error)
	VerifySecret(ctx context.Context, in usecase.VerifySecretInput) (*usecase.VerifySecretOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cfg config.Config) {
	end := &HTTPEndpoint{uc: uc, cfg: cfg}

	r.POST("/api/v1/account/register", end.Register)
	r.POST("/api/v1/account/sign-in", end.SignIn)
	//
	r.POST("/api/v1/account/otp/send", end.SendOTP)
	r.POST("/api/v1/account/otp/verify", end.VerifyOTP)
}
