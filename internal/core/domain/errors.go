package domain

import "errors"

var (
	ErrValidation   = errors.New("invalid inputs passed, please check your data")
	ErrForbidden    = errors.New("access forbidden")
	ErrInvalidToken = errors.New("authentication failed")
)
