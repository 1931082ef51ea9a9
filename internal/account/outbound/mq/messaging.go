package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/messaging"
	"github.com/shandysiswandi/otpauth/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

// Messaging notifies by publishing an account_otp_issued event.
type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) NotifyOTP(ctx context.Context, n entity.OTPNotification) error {
	ctx, span := m.ins.Tracer("account.outbound.mq").Start(ctx, "NotifyOTP")
	defer span.End()

	body, err := json.Marshal(event.AccountOTPIssuedMessage{
		AccountID: n.AccountID,
		Email:     n.Email,
		FullName:  n.FullName,
		Code:      n.Code,
		Purpose:   n.Purpose.String(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AccountOTPIssuedDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(n.Email),
		Headers: map[string]string{keyOfCorrelationID: cID},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
