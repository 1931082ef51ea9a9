package notification

import (
	"context"
	"errors"

	"github.com/shandysiswandi/otpauth/internal/notification/inbound"
	"github.com/shandysiswandi/otpauth/internal/notification/outbound/email"
	"github.com/shandysiswandi/otpauth/internal/notification/usecase"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/mail"
	"github.com/shandysiswandi/otpauth/internal/pkg/messaging"
	"github.com/shandysiswandi/otpauth/internal/pkg/uid"
	"github.com/shandysiswandi/otpauth/internal/pkg/validator"
)

var ErrMessagingRequired = errors.New("notification: messaging is required to consume events")

// Dependency wires the notification module. Consumers run on Ctx and stop
// when it is canceled.
type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if dep.Messaging == nil {
		return ErrMessagingRequired
	}
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoMail := email.New(dep.Mail, dep.Config.GetString("mail.from"), dep.Instrument)

	uc := usecase.NewNotification(usecase.Dependency{
		Config:     dep.Config,
		Validator:  dep.Validator,
		RepoMail:   repoMail,
		Instrument: dep.Instrument,
	})

	inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	return nil
}
