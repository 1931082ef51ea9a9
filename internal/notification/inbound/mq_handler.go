package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/otpauth/internal/notification/usecase"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/messaging"
	"github.com/shandysiswandi/otpauth/internal/pkg/uid"
	"github.com/shandysiswandi/otpauth/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

// ensureCorrelationID continues the publisher's correlation id, or starts a
// new one for drivers that drop headers.
func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OTPIssuedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OTPIssuedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: account otp issued notification", "msg_id", msg.ID(), "msg_body", string(body))

	var payload event.AccountOTPIssuedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of account otp issued notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOTPIssued(ctx, usecase.ConsumeOTPIssuedInput{
		AccountID: payload.AccountID,
		Email:     payload.Email,
		FullName:  payload.FullName,
		Code:      payload.Code,
		Purpose:   payload.Purpose,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume account otp issued", "account_id", payload.AccountID, "error", err)
		return err
	}

	return nil
}
