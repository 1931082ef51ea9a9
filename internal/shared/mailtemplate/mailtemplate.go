// Package mailtemplate renders the emails that carry one-time codes.
package mailtemplate

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/shandysiswandi/otpauth/internal/pkg/mail"
)

//go:embed templates/*
var files embed.FS

var (
	htmlOTP = htmltemplate.Must(htmltemplate.New("otp.html").Option("missingkey=zero").ParseFS(files, "templates/otp.html"))
	textOTP = texttemplate.Must(texttemplate.New("otp.txt").Option("missingkey=zero").ParseFS(files, "templates/otp.txt"))
)

// OTPData is the input of RenderOTP. Purpose is one of register, sign_in
// or resend; anything else gets the generic subject.
type OTPData struct {
	Email        string
	FullName     string
	Code         string
	Purpose      string
	AppName      string
	SupportEmail string
}

// RenderOTP builds the message addressed to data.Email.
func RenderOTP(data OTPData) (mail.Message, error) {
	if data.AppName == "" {
		data.AppName = "OTP Auth"
	}
	if data.FullName == "" {
		data.FullName = data.Email
	}

	var html, text bytes.Buffer
	if err := htmlOTP.Execute(&html, data); err != nil {
		return mail.Message{}, err
	}
	if err := textOTP.Execute(&text, data); err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		To:       []string{data.Email},
		Subject:  subject(data.Purpose, data.AppName),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}

func subject(purpose, app string) string {
	switch purpose {
	case "register":
		return "Welcome to " + app + ", confirm your email"
	case "sign_in":
		return "Your " + app + " sign-in code"
	default:
		return "Your " + app + " verification code"
	}
}
