// Package mail sends email through SMTP.
//
// Callers depend on the Mail interface and the provider agnostic Message.
package mail
