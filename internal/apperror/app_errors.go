package apperror

import "errors"

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMove  = errors.New("invalid move")
	ErrUnauthorized = errors.New("invalid api key")
)
