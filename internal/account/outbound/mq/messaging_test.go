package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/shandysiswandi/otpauth/internal/pkg/messaging"
	"github.com/shandysiswandi/otpauth/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	topic string
	msg   messaging.OutgoingMessage
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.topic = topic
	f.msg = msg
	return messaging.PublishResult{Topic: topic}, f.err
}

func TestNotifyOTP(t *testing.T) {
	pub := &fakePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "cid-1")

	err := m.NotifyOTP(ctx, entity.OTPNotification{
		AccountID: 7,
		Email:     "ada@example.com",
		FullName:  "Ada",
		Code:      "123456",
		Purpose:   entity.OTPPurposeSignIn,
	})
	require.NoError(t, err)

	assert.Equal(t, event.AccountOTPIssuedDestination, pub.topic)
	assert.Equal(t, "cid-1", pub.msg.Headers["cID"])
	assert.Equal(t, []byte("ada@example.com"), pub.msg.Key)

	var got event.AccountOTPIssuedMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, event.AccountOTPIssuedMessage{
		AccountID: 7,
		Email:     "ada@example.com",
		FullName:  "Ada",
		Code:      "123456",
		Purpose:   "sign_in",
	}, got)
	assert.Contains(t, string(pub.msg.Body), `"account_id":"7"`)
}

func TestNotifyOTP_PublishError(t *testing.T) {
	boom := errors.New("broker down")
	m := NewMessaging(&fakePublisher{err: boom}, instrument.NewNoop())

	err := m.NotifyOTP(context.Background(), entity.OTPNotification{Email: "ada@example.com"})
	assert.ErrorIs(t, err, boom)
}
