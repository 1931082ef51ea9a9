// Package otp generates the numeric one-time codes mailed to account owners.
//
// Codes are drawn from crypto/rand, uniformly over every value with the
// configured number of digits and no leading zero, so a 6 digit generator
// yields 100000 through 999999.
package otp
