package sim

import "errors"

var (
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
	ErrInvalidDt    = errors.New("sim: dt must be positive")
	ErrInvalidSpan  = errors.New("sim: duration must be positive")
)
