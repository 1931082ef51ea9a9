package entity

import "strings"

// OTPPurpose tells the notifier why a code was issued.
type OTPPurpose int16

const (
	OTPPurposeUnknown  OTPPurpose = 0
	OTPPurposeRegister OTPPurpose = 1
	OTPPurposeSignIn   OTPPurpose = 2
	OTPPurposeResend   OTPPurpose = 3
)

func (p OTPPurpose) String() string {
	switch p {
	case OTPPurposeRegister:
		return "register"
	case OTPPurposeSignIn:
		return "sign_in"
	case OTPPurposeResend:
		return "resend"
	default:
		return "unknown"
	}
}

func OTPPurposeFromString(s string) OTPPurpose {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "register":
		return OTPPurposeRegister
	case "sign_in":
		return OTPPurposeSignIn
	case "resend":
		return OTPPurposeResend
	default:
		return OTPPurposeUnknown
	}
}
