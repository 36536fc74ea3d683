package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errModuleRequired = errors.New("module is required")
	errCountInvalid   = errors.New("count must be a whole number")
	errCountNegative  = errors.New("count cannot be negative")
	errIPInvalid      = errors.New("invalid IPv4 host address")
)
