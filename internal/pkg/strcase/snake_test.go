package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"Email":      "email",
		"FullName":   "full_name",
		"AccountID":  "account_id",
		"HTTPServer": "http_server",
		"Code6":      "code6",
		"OTPCode":    "otp_code",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
