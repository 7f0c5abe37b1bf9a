package assistant

import "fmt"

// ValidationError rejects a submission before any I/O is attempted.
// Message is the user-visible warning for the function; Missing lists
// the required field names that were empty, when that was the cause.
type ValidationError struct {
	FunctionID string
	Missing    []string
	Message    string
}

func (e *ValidationError) Error() string { return e.Message }

// UnknownFunctionError reports a function identifier outside the
// registry.
type UnknownFunctionError struct {
	ID string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function: %q", e.ID)
}
