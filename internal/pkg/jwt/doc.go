// Package jwt mints and verifies HS512 signed session tokens for accounts
// that passed OTP verification.
package jwt
