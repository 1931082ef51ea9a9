package app

import (
	"fmt"

	"github.com/shandysiswandi/otpauth/internal/account"
	"github.com/shandysiswandi/otpauth/internal/notification"
)

func (a *App) initModules() error {
	if a.config.GetBool("modules.account.enabled") {
		if err := account.New(account.Dependency{
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Mail:        a.mail,
			Router:      a.router,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			OTP:         a.otp,
			Clock:       a.clock,
			Validator:   a.validator,
			JWT:         a.jwt,
		}); err != nil {
			return fmt.Errorf("account: %w", err)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Goroutine:  a.goroutine,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Validator:  a.validator,
		}); err != nil {
			return fmt.Errorf("notification: %w", err)
		}
	}

	return nil
}
