// Package config exposes typed access to the service configuration.
package config

import (
	"io"
	"time"
)

// Config retrieves configuration values by dotted key ("app.server.http.address").
// Missing keys or values that cannot be converted yield the zero value.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetFloat64(key string) float64

	// GetSecond reads an integer and returns it as a number of seconds.
	GetSecond(key string) time.Duration

	// GetArray reads a value stored as <element1>,<element2>,... and returns
	// the trimmed, non-empty elements.
	GetArray(key string) []string
}
