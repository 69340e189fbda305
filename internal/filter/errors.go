package filter

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters is wrapped by every validation error in this package.
var ErrInvalidParameters = errors.New("invalid filter parameters")

var (
	ErrInvalidOrder       = fmt.Errorf("%w: order must be between 0 and %d", ErrInvalidParameters, MaxOrder)
	ErrInvalidCutoff      = fmt.Errorf("%w: digital cutoff must satisfy 0 < cutoff < 1", ErrInvalidParameters)
	ErrInvalidRipple      = fmt.Errorf("%w: passband ripple must be a positive finite dB value", ErrInvalidParameters)
	ErrInvalidAttenuation = fmt.Errorf("%w: stopband attenuation must be a positive finite dB value", ErrInvalidParameters)
)
