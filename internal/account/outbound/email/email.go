package email

import (
	"context"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/mail"
	"github.com/shandysiswandi/otpauth/internal/shared/mailtemplate"
)

// Email notifies by sending the OTP email inline.
type Email struct {
	mail mail.Mail
	cfg  config.Config
}

func NewEmail(m mail.Mail, cfg config.Config) *Email {
	return &Email{mail: m, cfg: cfg}
}

func (e *Email) NotifyOTP(ctx context.Context, n entity.OTPNotification) error {
	msg, err := mailtemplate.RenderOTP(mailtemplate.OTPData{
		Email:        n.Email,
		FullName:     n.FullName,
		Code:         n.Code,
		Purpose:      n.Purpose.String(),
		AppName:      e.cfg.GetString("app.name"),
		SupportEmail: e.cfg.GetString("mail.support"),
	})
	if err != nil {
		return err
	}

	return e.mail.Send(ctx, msg)
}
