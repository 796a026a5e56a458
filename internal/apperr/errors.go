package apperr

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoConvergence = errors.New("solver did not converge")
	ErrInternal      = errors.New("internal table mismatch")
)
