package restyle

import (
	"errors"
	"fmt"
)

// ErrStreamMismatch is returned by Format when the token stream does not
// reconstruct the widget's current text (a gap, overlap, or stale stream).
var ErrStreamMismatch = errors.New("token stream does not reconstruct widget text")

// ConfigurationError reports an invalid formatter configuration: an unknown
// style, lexer, or formatter name, a value of the wrong type, or a widget
// missing a required capability.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "restyle: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
