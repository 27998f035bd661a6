// Package common defines shared constants and sentinel errors used across
// tripquote packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound        = errors.New("not found")
	ErrIndexOutOfRange = errors.New("index out of range")

	// Precondition errors, returned before anything is mutated.
	ErrEmptyItinerary = errors.New("itinerary is empty")
	ErrNameRequired   = errors.New("name is required")
	ErrBlankText      = errors.New("text is blank")
	ErrTitleRequired  = errors.New("title is required")
	ErrWrongCategory  = errors.New("operation not supported for category")

	// Payload errors.
	ErrMalformedPayload = errors.New("malformed payload")
)
