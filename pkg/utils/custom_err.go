package utils

import "errors"

var (
	ErrSessionNotFound = errors.New("quote session not found")
	ErrInvalidSession  = errors.New("invalid session token")
	ErrPageNotFound    = errors.New("page not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("command not allowed in the current state")
	ErrMailRelay       = errors.New("mail relay failed")
)
