package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FullName  string `validate:"required,max=100"`
	Email     string `validate:"required,email"`
	AccountID int64  `validate:"required,gt=0"`
	Code      string `validate:"required,otp"`
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(sample{
		FullName:  "Ada Lovelace",
		Email:     "ada@example.com",
		AccountID: 1,
		Code:      "482913",
	}))

	err = v.Validate(sample{Email: "nope", Code: "12a456"})
	require.Error(t, err)

	var verr V10ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Values(), "full_name")
	assert.Contains(t, verr.Values(), "email")
	assert.Contains(t, verr.Values(), "account_id")
	assert.Equal(t, "Code must be a 6 digit code", verr.Values()["code"])
	assert.NotEmpty(t, verr.Error())
}

func TestV10Validator_OTPLength(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	for _, code := range []string{"12345", "1234567", "", " 12345"} {
		assert.Error(t, v.Validate(sample{FullName: "A", Email: "a@b.co", AccountID: 1, Code: code}), code)
	}
}
