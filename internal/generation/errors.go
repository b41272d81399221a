package generation

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound is returned when a plan prompt has no location to describe.
	ErrLocationNotFound = errors.New("location not found")
	// ErrGenerationService covers timeouts, transport failures and empty or
	// blocked responses from the model.
	ErrGenerationService = errors.New("generation service unavailable")
	// ErrMalformedGenerationOutput is matched by every *MalformedOutputError.
	ErrMalformedGenerationOutput = errors.New("malformed generation output")
)

// maxDiagnosticChars bounds the model output kept on a MalformedOutputError.
const maxDiagnosticChars = 2000

// MalformedOutputError reports model output that could not be repaired into
// the expected JSON. Text holds at most maxDiagnosticChars characters of it
// and is meant for logs only.
type MalformedOutputError struct {
	Err  error
	Text string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedGenerationOutput, e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedGenerationOutput
}

func malformed(text string, err error) *MalformedOutputError {
	return &MalformedOutputError{Err: err, Text: truncate(text, maxDiagnosticChars)}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
