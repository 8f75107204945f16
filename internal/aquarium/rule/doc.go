// Package rule holds the field validation engine for aquarium forms.
//
// Every function is a pure predicate over one raw string: it returns a
// Verdict and never touches presentation state, storage or the network.
// Patterns are compiled once at init, so the package is safe for concurrent
// use without coordination.
package rule
