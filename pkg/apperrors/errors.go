package apperrors

import "errors"

var (
	ErrLoad          = errors.New("dataset load failed")
	ErrInvalidRow    = errors.New("invalid row")
	ErrSchema        = errors.New("schema setup failed")
	ErrNotFound      = errors.New("not found")
	ErrUnknownGroup  = errors.New("unknown metric group")
	ErrUnknownEngine = errors.New("unknown metric engine")
	ErrUnknownSource = errors.New("unknown dataset source")
)
