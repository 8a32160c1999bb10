package iir

import "errors"

var (
	// ErrNilSet is returned when a nil *Set is evaluated.
	ErrNilSet = errors.New("iir: nil filter set")

	// ErrLengthMismatch is returned when parallel input sequences differ in
	// length: amplitude and phase envelopes, or the a1, b0 and delay slices
	// of a set.
	ErrLengthMismatch = errors.New("iir: length mismatch")

	// ErrInvalidDelay is returned when a filter delay is negative.
	ErrInvalidDelay = errors.New("iir: invalid filter delay")

	// ErrInvalidParams is returned for non-finite or out-of-range synthesis
	// parameters.
	ErrInvalidParams = errors.New("iir: invalid synthesis parameters")

	// ErrAnchorOutOfRange is returned when the synthesizer computes an
	// anchor sample outside the envelope.
	ErrAnchorOutOfRange = errors.New("iir: anchor index out of range")

	// ErrInvalidPSD is returned for an empty noise spectrum or one with a
	// non-positive or non-finite entry.
	ErrInvalidPSD = errors.New("iir: invalid noise power spectral density")

	// ErrInvalidLength is returned for unusable buffer lengths.
	ErrInvalidLength = errors.New("iir: invalid length")
)
