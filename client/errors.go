package client

import "errors"

// Errors for configuration validation.
var (
	ErrConfigRequired = errors.New("config is required")
)

// Errors for input validation.
var (
	ErrNoIDs     = errors.New("no image ids provided")
	ErrEmptyPath = errors.New("path is required")
)
