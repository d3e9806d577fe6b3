package recaman

import "errors"

// Domain errors for sequence and circle operations.
var (
	// ErrInvalidArgument indicates a negative count, a negative start or a
	// count above MaxTerms.
	ErrInvalidArgument = errors.New("recaman: invalid argument")

	// ErrInsufficientSequence indicates a sequence too short to yield any circle.
	ErrInsufficientSequence = errors.New("recaman: not enough circles to plot")
)
