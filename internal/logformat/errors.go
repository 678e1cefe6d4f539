package logformat

import "errors"

// ErrInvalidFormat is returned when the emitted regex is rejected by the
// regex engine. It is the only fatal compile-time error.
var ErrInvalidFormat = errors.New("invalid format: regex compile failed")
