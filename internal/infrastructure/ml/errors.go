package ml

import "errors"

var (
	// ErrNotFitted is returned when a component is used before Fit.
	ErrNotFitted = errors.New("model component is not fitted")

	// ErrInvalidArtifact is returned when a model artifact cannot be decoded
	// or fails structural validation.
	ErrInvalidArtifact = errors.New("invalid model artifact")
)
