package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/account/inbound"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/db"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/email"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/logger"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/memory"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/mq"
	"github.com/shandysiswandi/otpauth/internal/account/usecase"
	"github.com/shandysiswandi/otpauth/internal/pkg/clock"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/jwt"
	"github.com/shandysiswandi/otpauth/internal/pkg/mail"
	"github.com/shandysiswandi/otpauth/internal/pkg/messaging"
	"github.com/shandysiswandi/otpauth/internal/pkg/otp"
	"github.com/shandysiswandi/otpauth/internal/pkg/router"
	"github.com/shandysiswandi/otpauth/internal/pkg/uid"
	"github.com/shandysiswandi/otpauth/internal/pkg/validator"
)

var (
	ErrUnknownNotifier   = errors.New("account: unknown notifier")
	ErrNotifierNeedsDeps = errors.New("account: notifier dependency is not configured")
)

type store interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	CreateAccount(ctx context.Context, in entity.NewAccount) (*entity.Account, error)
	UpdateAccountOTPByEmail(ctx context.Context, email, code string) (*entity.Account, error)
	ClearAccountOTP(ctx context.Context, id int64, code string) (bool, error)
}

type notifier interface {
	NotifyOTP(ctx context.Context, n entity.OTPNotification) error
}

// Dependency wires the account module. DBConn nil selects the in-memory
// store. Mail and Messaging are only needed by their notifier.
type Dependency struct {
	DBConn      *pgxpool.Pool
	Messaging   messaging.Messaging
	Mail        mail.Mail
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	OTP         otp.Generator              `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	notify, err := newNotifier(dep)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:      newStore(dep),
		Notifier:    notify,
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Config:      dep.Config,
		UID:         dep.UID,
		OTP:         dep.OTP,
		Clock:       dep.Clock,
		JWT:         dep.JWT,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config)

	return nil
}

func newStore(dep Dependency) store {
	if dep.DBConn == nil {
		slog.Warn("account module uses the in-memory store, data is lost on restart")
		return memory.New()
	}

	return db.NewDB(dep.DBConn, dep.Instrument)
}

func newNotifier(dep Dependency) (notifier, error) {
	switch name := dep.Config.GetString("modules.account.notifier"); name {
	case "", "log":
		return logger.NewLogger(), nil

	case "mail":
		if dep.Mail == nil {
			return nil, fmt.Errorf("%w: mail", ErrNotifierNeedsDeps)
		}
		return email.NewEmail(dep.Mail, dep.Config), nil

	case "messaging":
		if dep.Messaging == nil {
			return nil, fmt.Errorf("%w: messaging", ErrNotifierNeedsDeps)
		}
		return mq.NewMessaging(dep.Messaging, dep.Instrument), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotifier, name)
	}
}
