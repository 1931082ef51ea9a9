package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/otpauth/internal/pkg/stacktrace"
)

type inbound interface {
	Message
	answered() bool
}

// dispatch runs h for one message and applies auto ack.
func dispatch(ctx context.Context, driver string, h Handler, msg inbound, autoAck bool) {
	err := safeHandle(ctx, driver, h, msg)
	if err != nil {
		slog.WarnContext(ctx, "message handler failed", "driver", driver, "topic", msg.Topic(), "error", err)
	}

	if !autoAck || msg.answered() {
		return
	}

	respond := msg.Ack
	if err != nil {
		respond = msg.Nack
	}
	if rerr := respond(ctx); rerr != nil {
		slog.ErrorContext(ctx, "failed to respond to message", "driver", driver, "topic", msg.Topic(), "error", rerr)
	}
}

func safeHandle(ctx context.Context, driver string, h Handler, msg Message) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in message handler", "driver", driver, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in message handler", "driver", driver, "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: panic in %s handler: %v", driver, rvr)
	}()

	return h(ctx, msg)
}
