// ABOUTME: Synthesis error taxonomy
// ABOUTME: Distinguishes format failures from credential and transport failures
package intel

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey means no generator credential is configured. Surfaced
// distinctly from transport errors so callers can prompt for configuration
// rather than suggesting a retry.
var ErrMissingAPIKey = errors.New("text generator credential not configured")

// SynthesisFormatError means the generator's output failed schema validation
// even after structural repair. Retryable from the caller's point of view;
// the previously stored document is left untouched.
type SynthesisFormatError struct {
	Reason string
}

func (e *SynthesisFormatError) Error() string {
	return fmt.Sprintf("synthesis output failed validation: %s", e.Reason)
}

func formatErr(format string, args ...interface{}) error {
	return &SynthesisFormatError{Reason: fmt.Sprintf(format, args...)}
}

// IsFormatError reports whether err is a synthesis format failure.
func IsFormatError(err error) bool {
	var fe *SynthesisFormatError
	return errors.As(err, &fe)
}
