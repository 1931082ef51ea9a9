package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	accountdb "github.com/shandysiswandi/otpauth/internal/account/outbound/db"
	"github.com/shandysiswandi/otpauth/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpauth/internal/pkg/mail"
	"github.com/shandysiswandi/otpauth/internal/pkg/messaging"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	driverPostgres = "postgres"
	driverMemory   = "memory"

	headerIdempotencyKey = "Idempotency-Key"

	connectAttempts = 5

	pubSubScope = "https://www.googleapis.com/auth/pubsub"
)

var ErrUnknownDatabaseDriver = errors.New("unknown database driver")

func (a *App) initDatabase() error {
	switch driver := strings.ToLower(strings.TrimSpace(a.config.GetString("database.driver"))); driver {
	case driverMemory:
		slog.Warn("database driver is memory, accounts are not persisted")
		return nil
	case driverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDatabaseDriver, driver)
	}

	poolCfg, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	poolCfg.MaxConns = a.config.GetInt32("database.pool.max_conns")
	poolCfg.MinConns = a.config.GetInt32("database.pool.min_conns")
	poolCfg.MaxConnLifetime = a.config.GetSecond("database.pool.max_conn_lifetime_seconds")
	poolCfg.MaxConnIdleTime = a.config.GetSecond("database.pool.max_conn_idle_seconds")
	poolCfg.HealthCheckPeriod = a.config.GetSecond("database.pool.health_check_period_seconds")

	pool, err := pgxpool.NewWithConfig(a.ctx, poolCfg)
	if err != nil {
		return err
	}
	a.dbConn = pool

	if err := pingWithRetry(a.ctx, "database", connectAttempts, pool.Ping); err != nil {
		return err
	}

	if a.config.GetBool("database.migrate") {
		if err := accountdb.Migrate(a.ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		slog.Info("database migrated")
	}

	return nil
}

// initCache falls back to a passthrough tracker when redis is not
// configured, so Idempotency-Key headers are accepted but not enforced.
func (a *App) initCache() error {
	url := strings.TrimSpace(a.config.GetString("redis.url"))
	if url == "" {
		slog.Warn("redis is not configured, idempotency keys are ignored")
		a.idemp = idempotency.Passthrough{}
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	a.cacheConn = redis.NewClient(opt)

	if err := pingWithRetry(a.ctx, "redis", connectAttempts, func(ctx context.Context) error {
		return a.cacheConn.Ping(ctx).Err()
	}); err != nil {
		return err
	}

	a.idemp = idempotency.New(a.cacheConn, "account")
	return nil
}

func (a *App) initMail() error {
	if strings.TrimSpace(a.config.GetString("mail.host")) == "" {
		return nil
	}

	smtp, err := mail.NewSMTP(mail.SMTPConfig{
		Host:     a.config.GetString("mail.host"),
		Port:     a.config.GetInt("mail.port"),
		Username: a.config.GetString("mail.username"),
		Password: a.config.GetString("mail.password"),
		From:     a.config.GetString("mail.from"),
	})
	if err != nil {
		return err
	}

	a.mail = smtp
	return nil
}

func (a *App) initMessaging() error {
	driver := strings.TrimSpace(a.config.GetString("messaging.driver"))
	if driver == "" {
		return nil
	}

	var pubSubOpts []option.ClientOption
	if strings.EqualFold(driver, messaging.DriverPubSub) {
		opts, err := a.pubSubClientOptions()
		if err != nil {
			return err
		}
		pubSubOpts = opts
	}

	client, err := messaging.NewFromDriver(a.ctx, driver, messaging.FactoryOptions{
		NSQ: messaging.NSQConfig{
			ProducerAddr: a.config.GetString("messaging.nsq.producer_addr"),
			NSQDAddrs:    a.config.GetArray("messaging.nsq.consumer_nsqd_addrs"),
			LookupdAddrs: a.config.GetArray("messaging.nsq.consumer_lookupd_addrs"),
		},
		NATS: messaging.NATSConfig{
			URL:  a.config.GetString("messaging.nats.url"),
			Name: a.config.GetString("messaging.nats.name"),
			Options: []nats.Option{
				nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
				nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
				nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
				nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
			},
		},
		Kafka: messaging.KafkaConfig{
			Brokers: a.config.GetArray("messaging.kafka.brokers"),
			Dialer: &kafka.Dialer{
				ClientID:  a.config.GetString("messaging.kafka.client_id"),
				Timeout:   a.config.GetSecond("messaging.kafka.dial_timeout_seconds"),
				DualStack: true,
			},
		},
		PubSub: messaging.PubSubConfig{
			ProjectID:      a.config.GetString("messaging.pubsub.project_id"),
			ClientOptions:  pubSubOpts,
			EnableOrdering: a.config.GetBool("messaging.pubsub.enable_ordering"),
			AutoCreate:     a.config.GetBool("messaging.pubsub.auto_create"),
		},
	})
	if err != nil {
		return fmt.Errorf("driver %s: %w", driver, err)
	}

	a.messaging = client
	return nil
}

func (a *App) pubSubClientOptions() ([]option.ClientOption, error) {
	var opts []option.ClientOption

	if v := a.config.GetString("messaging.pubsub.endpoint"); v != "" {
		opts = append(opts, option.WithEndpoint(v))
	}

	// emulators serve plaintext gRPC without auth
	if a.config.GetBool("messaging.pubsub.without_auth") {
		return append(opts,
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		), nil
	}

	if path := a.config.GetString("messaging.pubsub.credentials_file"); path != "" {
		// #nosec G304 -- path is from trusted config file.
		credsJSON, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("pubsub credentials file: %w", err)
		}

		creds, err := google.CredentialsFromJSON(a.ctx, credsJSON, pubSubScope)
		if err != nil {
			return nil, fmt.Errorf("pubsub credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	return opts, nil
}
