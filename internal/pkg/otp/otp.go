package otp

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/pquerna/otp"
)

// ErrUnsupportedDigits is returned for a length other than 6 or 8.
var ErrUnsupportedDigits = errors.New("otp: digits must be 6 or 8")

// Generator produces a fresh code on every call.
type Generator interface {
	Generate() (string, error)
}

// Numeric is a Generator of fixed length decimal codes.
type Numeric struct {
	digits otp.Digits
	min    *big.Int
	span   *big.Int
	rand   io.Reader
}

// NewNumeric builds a generator for the given code length.
func NewNumeric(digits otp.Digits) (*Numeric, error) {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		return nil, ErrUnsupportedDigits
	}

	lower := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits.Length()-1)), nil)
	upper := new(big.Int).Mul(lower, big.NewInt(10))

	return &Numeric{
		digits: digits,
		min:    lower,
		span:   new(big.Int).Sub(upper, lower),
		rand:   rand.Reader,
	}, nil
}

// Generate returns a code in [10^(n-1), 10^n - 1].
func (g *Numeric) Generate() (string, error) {
	n, err := rand.Int(g.rand, g.span)
	if err != nil {
		return "", err
	}

	return g.digits.Format(int32(n.Add(n, g.min).Int64())), nil
}
