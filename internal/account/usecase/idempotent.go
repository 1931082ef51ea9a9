package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
	"github.com/shandysiswandi/otpauth/internal/pkg/idempotency"
)

// idempotent runs fn once per scope and key. An empty key runs fn directly.
func (s *Usecase) idempotent(ctx context.Context, scope, key, failMsg string, fn func(context.Context) error) error {
	if key == "" {
		return fn(ctx)
	}

	done := false
	err := s.idemp.Exec(ctx, scope+":"+key, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return err
		}
		done = true
		return nil
	}, idempotency.WithStateTTL(s.cfg.GetMinute("modules.account.idempotency_ttl_minutes")))
	if err == nil {
		return nil
	}

	var gerr *goerror.Error
	switch {
	case errors.As(err, &gerr):
		return err
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return goerror.NewBusiness("Request already in progress", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return goerror.NewBusiness("Request already processed", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyFailed):
		return goerror.NewBusiness("Previous request failed", goerror.CodeConflict)
	case done:
		slog.WarnContext(ctx, "failed to record idempotency outcome", "scope", scope, "error", err)
		return nil
	default:
		slog.ErrorContext(ctx, "failed to acquire idempotency key", "scope", scope, "error", err)
		return goerror.NewServer(err, failMsg)
	}
}
