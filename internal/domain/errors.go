package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("domain: not found")
	ErrValidation   = errors.New("domain: validation failed")
	ErrNotDraggable = errors.New("domain: not draggable")
)
