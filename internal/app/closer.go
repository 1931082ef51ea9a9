package app

import (
	"context"
	"log/slog"
)

// initClosers lists resources in release order. Every closer tolerates a
// resource that was never opened.
func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{name: "Instrument", fn: func(ctx context.Context) error {
			if a.ins == nil {
				return nil
			}
			return a.ins.Shutdown(ctx)
		}},
		{name: "Messaging", fn: func(context.Context) error {
			if a.messaging == nil {
				return nil
			}
			return a.messaging.Close()
		}},
		{name: "Mail", fn: func(context.Context) error {
			if a.mail == nil {
				return nil
			}
			return a.mail.Close()
		}},
		{name: "Redis", fn: func(context.Context) error {
			if a.cacheConn == nil {
				return nil
			}
			return a.cacheConn.Close()
		}},
		{name: "Database", fn: func(context.Context) error {
			if a.dbConn != nil {
				a.dbConn.Close()
			}
			return nil
		}},
		{name: "Config", fn: func(context.Context) error {
			if a.config == nil {
				return nil
			}
			return a.config.Close()
		}},
	}
}

func (a *App) closeResources(ctx context.Context) {
	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
}
