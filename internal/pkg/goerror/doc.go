// Package goerror defines the structured error returned by usecases.
//
// An Error carries a user-facing message, a Type bucket and a Code that the
// HTTP router maps to a status. Repositories return the sentinel errors
// ErrNotFound and ErrConflict; usecases translate them.
package goerror
