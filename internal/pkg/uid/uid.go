// Package uid generates identifiers used for request correlation.
package uid

import "github.com/google/uuid"

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// Func adapts a plain function to StringID.
type Func func() string

// Generate calls f.
func (f Func) Generate() string { return f() }

// UUID produces time-ordered (v7) UUID strings so correlation IDs sort by arrival.
type UUID struct {
	fallback func() string
}

// NewUUID returns a UUID generator that degrades to random (v4) UUIDs when the
// v7 source fails.
func NewUUID() *UUID {
	return &UUID{fallback: uuid.NewString}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return u.fallback()
}
