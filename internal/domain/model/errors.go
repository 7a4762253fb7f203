package model

import "errors"

var (
	// ErrModelNotTrained is returned when a prediction is requested before any
	// credit model snapshot has been installed.
	ErrModelNotTrained = errors.New("credit model not trained")

	// ErrInvalidInput marks request payloads that cannot be decoded into the
	// expected field types.
	ErrInvalidInput = errors.New("invalid input")
)
