package records

import "errors"

var (
	// ErrMissingField is returned when a required field is absent from the request
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidVideoID is returned when a video id is empty or unsafe as a file name
	ErrInvalidVideoID = errors.New("invalid video ID")

	// ErrInvalidRange is returned when start/end do not describe a positive span
	ErrInvalidRange = errors.New("invalid clip range")

	// ErrInvalidLabels is returned when the label set is empty or a label is malformed
	ErrInvalidLabels = errors.New("invalid label set")
)
