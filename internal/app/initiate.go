package app

import (
	"errors"
	"net/http"
	"os"
	"time"

	libOTP "github.com/pquerna/otp"
	"github.com/rs/cors"
	"github.com/shandysiswandi/otpauth/internal/pkg/clock"
	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/jwt"
	"github.com/shandysiswandi/otpauth/internal/pkg/otp"
	"github.com/shandysiswandi/otpauth/internal/pkg/router"
	"github.com/shandysiswandi/otpauth/internal/pkg/uid"
	"github.com/shandysiswandi/otpauth/internal/pkg/validator"
)

const (
	defaultConfigPath = "/config/config.yaml"
	localConfigPath   = "./config/config.yaml"
)

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if os.Getenv("LOCAL") == "true" {
		return localConfigPath
	}
	return defaultConfigPath
}

func (a *App) initConfig() error {
	cfg, err := config.NewViper(configPath())
	if err != nil {
		return err
	}

	if tz := cfg.GetString("app.tz"); tz != "" {
		if err := os.Setenv("TZ", tz); err != nil {
			return errors.Join(err, cfg.Close())
		}
	}

	a.config = cfg
	return nil
}

func (a *App) initInstrument() (err error) {
	a.ins, err = instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	return err
}

func (a *App) initLibraries() (err error) {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	if a.validator, err = validator.NewV10Validator(); err != nil {
		return err
	}

	// snowflake node 0 is derived from the hostname
	node := int64(a.config.GetInt("app.snowflake_node"))
	if node == 0 {
		node = -1
	}
	if a.uid, err = uid.NewSnowflake(node); err != nil {
		return err
	}

	a.otp, err = otp.NewNumeric(libOTP.DigitsSix)
	return err
}

func (a *App) initJWT() (err error) {
	a.jwt, err = jwt.NewHS512(jwt.Config{
		Secret:    []byte(a.config.GetString("jwt.secret")),
		Issuer:    a.config.GetString("jwt.issuer"),
		Audiences: a.config.GetArray("jwt.audiences"),
		TTL:       a.config.GetMinute("jwt.ttl_minutes"),
		Clock:     a.clock,
		UUID:      a.uuid,
	})
	return err
}

func (a *App) initHTTPServer() error {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})
	a.router.GET("/health", a.health)

	handler := cors.New(cors.Options{
		AllowedOrigins:   a.config.GetArray("app.server.cors"),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", router.HeaderCorrelationID, headerIdempotencyKey},
		ExposedHeaders:   []string{router.HeaderCorrelationID},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           handler,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}

	return nil
}
