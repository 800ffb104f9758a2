package supply

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCurve is returned when a clearing price is requested from a
	// supply curve with no segments.
	ErrEmptyCurve = errors.New("supply curve has no segments")

	// ErrInvalidDemand is returned for negative or non-finite demand.
	ErrInvalidDemand = errors.New("demand must be a finite value >= 0")

	// ErrNoOfferCurve marks a resource whose offer curve is absent or empty.
	ErrNoOfferCurve = errors.New("offer curve is empty")
)

// DecodeError reports where a textual offer curve stopped making sense.
type DecodeError struct {
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode offer curve at offset %d: %s", e.Offset, e.Msg)
}
