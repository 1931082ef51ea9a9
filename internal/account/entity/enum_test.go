package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTPPurpose(t *testing.T) {
	tests := []struct {
		in   OTPPurpose
		want string
	}{
		{in: OTPPurposeRegister, want: "register"},
		{in: OTPPurposeSignIn, want: "sign_in"},
		{in: OTPPurposeResend, want: "resend"},
		{in: OTPPurposeUnknown, want: "unknown"},
		{in: OTPPurpose(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}

	assert.Equal(t, OTPPurposeSignIn, OTPPurposeFromString(" SIGN_IN "))
	assert.Equal(t, OTPPurposeUnknown, OTPPurposeFromString("login"))
}

func TestAccount_HasPendingOTP(t *testing.T) {
	code := "123456"
	assert.True(t, (&Account{OTP: &code}).HasPendingOTP())
	assert.False(t, (&Account{}).HasPendingOTP())
}
