package apperror

import "errors"

var (
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrMoveOutOfRange   = errors.New("move is out of history range")
	ErrSessionNotFound  = errors.New("session not found")
	ErrEmptySessionID   = errors.New("session id is empty")
	ErrCorruptedHistory = errors.New("session history is corrupted")
)
