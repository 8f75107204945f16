// Package idempotency guards one-shot operations with a redis backed state
// machine.
//
// A key moves from none to in_progress when Acquire wins the SETNX race, and
// then to completed or failed once the guarded function returns. Repeats
// with the same key observe the stored state instead of running again.
package idempotency
