package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/otpauth/internal/pkg/config"
	"github.com/shandysiswandi/otpauth/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/messaging"
	"github.com/shandysiswandi/otpauth/internal/pkg/uid"
	"github.com/shandysiswandi/otpauth/internal/shared/event"
)

type consumer struct {
	name    string
	topic   string // destination where publisher sent message
	handler messaging.Handler
}

// RegisterMQConsumer starts every consumer listed in
// modules.notification.consumer_names and reports how many were started.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) int {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")
	concurrency := cfg.GetInt("modules.notification.concurrency")
	if concurrency <= 0 {
		concurrency = 10
	}

	consumers := []consumer{
		{
			name:    event.AccountOTPIssuedConsumerNotification,
			topic:   event.AccountOTPIssuedDestination,
			handler: mqHandler.OTPIssuedNotification,
		},
	}

	started := 0
	for _, c := range consumers {
		if !slices.Contains(enableConsumerNames, c.name) {
			continue
		}

		ok := routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", c.name)
			return messenger.Consume(pCtx,
				c.topic,
				c.handler,
				// the consumer name names the group on every driver
				messaging.WithChannel(c.name),
				messaging.WithQueueGroup(c.name),
				messaging.WithGroup(c.name),
				messaging.WithSubscription(c.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(concurrency),
				messaging.WithMaxInFlight(concurrency),
			)
		})
		if ok {
			started++
		}
	}

	return started
}
