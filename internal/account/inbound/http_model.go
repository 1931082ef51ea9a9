package inbound

import (
	"strconv"
	"time"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
)

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type SignInRequest struct {
	Email string `json:"email"`
}

type AccountResponse struct {
	ID        string    `json:"id" example:"1867318112431923200"`
	FullName  string    `json:"full_name" example:"Ada Lovelace"`
	Email     string    `json:"email" example:"ada@example.com"`
	OTP       *string   `json:"otp,omitempty" example:"123456"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountResponse(a *entity.Account, exposeOTP bool) AccountResponse {
	resp := AccountResponse{
		ID:        strconv.FormatInt(a.ID, 10),
		FullName:  a.FullName,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
	if exposeOTP {
		resp.OTP = a.OTP
	}
	return resp
}

type RegisterResponse struct {
	AccountResponse
}

func (RegisterResponse) Message() string {
	return "Account created. Please check your email for the verification code."
}

type SignInResponse struct {
	AccountResponse
}

func (SignInResponse) Message() string {
	return "Verification code sent. Please check your email."
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

type SendOTPResponse struct {
	AccountID string  `json:"account_id"`
	OTP       *string `json:"otp,omitempty"`
}

func (SendOTPResponse) Message() string {
	return "Verification code sent. Please check your email."
}

type VerifyOTPRequest struct {
	AccountID int64  `json:"account_id,string"`
	Code      string `json:"code"`
}

type VerifyOTPResponse struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (VerifyOTPResponse) Message() string {
	return "Verification successful"
}
