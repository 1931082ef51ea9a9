package usecase

import (
	"context"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/clock"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/jwt"
	"github.com/shandysiswandi/otpauth/internal/pkg/otp"
	"github.com/shandysiswandi/otpauth/internal/pkg/uid"
	"github.com/shandysiswandi/otpauth/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)

	CreateAccount(ctx context.Context, in entity.NewAccount) (*entity.Account, error)

	// UpdateAccountOTPByEmail stores code and returns the updated account in
	// one atomic step.
	UpdateAccountOTPByEmail(ctx context.Context, email, code string) (*entity.Account, error)
	// ClearAccountOTP clears the code only while it still equals code. It
	// reports false when another request consumed or rotated it first.
	ClearAccountOTP(ctx context.Context, id int64, code string) (bool, error)
}

type notifier interface {
	NotifyOTP(ctx context.Context, n entity.OTPNotification) error
}

type Usecase struct {
	repoDB    repoDB
	notifier  notifier
	idemp     idempotency.Idempotency
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	otp       otp.Generator
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB      repoDB
	Notifier    notifier
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	UID         uid.NumberID
	OTP         otp.Generator
	Clock       clock.Clocker
	JWT         jwt.JWT
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		notifier:  dep.Notifier,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		otp:       dep.OTP,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}
