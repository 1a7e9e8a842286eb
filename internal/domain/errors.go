package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("domain: not found")
	ErrConflict     = errors.New("domain: conflict")
	ErrInvalidMove  = errors.New("domain: invalid move")
	ErrInvalidBoard = errors.New("domain: invalid board")
)
