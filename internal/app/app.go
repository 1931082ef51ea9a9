package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpauth/internal/pkg/clock"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/goroutine"
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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources, nil when not configured
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	// run in order by Stop
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New runs every init step in order. When a step fails, the resources
// opened so far are closed and the error names the failing step.
func New() (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{name: "config", fn: app.initConfig},
		{name: "instrument", fn: app.initInstrument},
		{name: "libraries", fn: app.initLibraries},
		{name: "jwt", fn: app.initJWT},
		{name: "database", fn: app.initDatabase},
		{name: "cache", fn: app.initCache},
		{name: "mail", fn: app.initMail},
		{name: "messaging", fn: app.initMessaging},
		{name: "http server", fn: app.initHTTPServer},
		{name: "modules", fn: app.initModules},
	}

	app.initClosers()

	for _, step := range steps {
		if err := step.fn(); err != nil {
			app.closeResources(ctx)
			cancel()
			return nil, fmt.Errorf("init %s: %w", step.name, err)
		}
	}

	return app, nil
}
