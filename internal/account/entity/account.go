package entity

import (
	"errors"
	"time"
)

var (
	ErrDuplicateAccount = errors.New("account: email already registered")
	ErrAccountNotFound  = errors.New("account: account not found")
	ErrInvalidCode      = errors.New("account: invalid otp code")
)

// Account is a registered email address. OTP is nil while no challenge is
// outstanding.
type Account struct {
	ID        int64
	FullName  string
	Email     string
	OTP       *string
	CreatedAt time.Time
}

// HasPendingOTP reports whether a code was issued and not consumed yet.
func (a *Account) HasPendingOTP() bool {
	return a.OTP != nil
}

type NewAccount struct {
	ID        int64
	FullName  string
	Email     string
	OTP       string
	CreatedAt time.Time
}

// OTPNotification is handed to the notifier after a code is stored.
type OTPNotification struct {
	AccountID int64
	Email     string
	FullName  string
	Code      string
	Purpose   OTPPurpose
}
