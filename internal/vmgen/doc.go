// Package vmgen turns a validated cluster spec and its allocated addresses
// into concrete VM records.
//
// Masters are generated before workers, so masters always take the lowest
// addresses of the allocated range. Downstream scripts rely on the control
// plane being contiguous and first.
package vmgen
