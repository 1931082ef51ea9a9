// Package config reads typed runtime settings.
package config

import (
	"io"
	"time"
)

// Config is the read side of the runtime configuration.
//
// Getters never fail; a missing or malformed key yields the zero value.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetUint16(key string) uint16
	GetFloat64(key string) float64

	// GetSecond reads an integer key as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer key as a number of minutes.
	GetMinute(key string) time.Duration

	// GetArray reads a comma separated value, for example "a, b,c".
	// Blank elements are dropped.
	GetArray(key string) []string
}
