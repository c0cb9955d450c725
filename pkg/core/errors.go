package core

import "errors"

// Common errors.
var (
	ErrNotFound    = errors.New("entry not found")
	ErrUnknownFlag = errors.New("unknown query state flag")
	ErrNoWatch     = errors.New("repository does not support watching")
)
