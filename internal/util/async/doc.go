// Package async provides helpers for running independent work concurrently.
//
// Results and errors are always reported in input order, so callers see the
// same output regardless of scheduling.
package async
