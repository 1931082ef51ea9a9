package account

import (
	"strings"
	"testing"
	"time"

	pqotp "github.com/pquerna/otp"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/email"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/logger"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/memory"
	"github.com/shandysiswandi/otpauth/internal/pkg/clock"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/jwt"
	"github.com/shandysiswandi/otpauth/internal/pkg/mail"
	"github.com/shandysiswandi/otpauth/internal/pkg/otp"
	"github.com/shandysiswandi/otpauth/internal/pkg/router"
	"github.com/shandysiswandi/otpauth/internal/pkg/uid"
	"github.com/shandysiswandi/otpauth/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDependency(t *testing.T, notifier string) Dependency {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  account:\n    notifier: "+notifier+"\n"))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	gen, err := otp.NewNumeric(pqotp.DigitsSix)
	require.NoError(t, err)

	sf, err := uid.NewSnowflake(1)
	require.NoError(t, err)

	signer, err := jwt.NewHS512(jwt.Config{Secret: []byte(strings.Repeat("k", 64)), TTL: time.Minute})
	require.NoError(t, err)

	return Dependency{
		Router:      router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID()}),
		Idempotency: idempotency.Passthrough{},
		Config:      cfg,
		Instrument:  instrument.NewNoop(),
		UID:         sf,
		OTP:         gen,
		Clock:       clock.New(),
		Validator:   v,
		JWT:         signer,
	}
}

func TestNew(t *testing.T) {
	require.NoError(t, New(newDependency(t, "log")))

	dep := newDependency(t, "log")
	dep.JWT = nil
	assert.Error(t, New(dep))
}

func TestNewNotifier(t *testing.T) {
	n, err := newNotifier(newDependency(t, "log"))
	require.NoError(t, err)
	assert.IsType(t, &logger.Logger{}, n)

	_, err = newNotifier(newDependency(t, "mail"))
	assert.ErrorIs(t, err, ErrNotifierNeedsDeps)

	dep := newDependency(t, "mail")
	dep.Mail = &mail.SMTP{}
	n, err = newNotifier(dep)
	require.NoError(t, err)
	assert.IsType(t, &email.Email{}, n)

	_, err = newNotifier(newDependency(t, "messaging"))
	assert.ErrorIs(t, err, ErrNotifierNeedsDeps)

	_, err = newNotifier(newDependency(t, "pigeon"))
	assert.ErrorIs(t, err, ErrUnknownNotifier)
}

func TestNewStore_Memory(t *testing.T) {
	assert.IsType(t, &memory.Memory{}, newStore(newDependency(t, "log")))
}
