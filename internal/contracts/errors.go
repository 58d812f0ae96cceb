package contracts

import "fmt"

// ConfigurationError reports invalid engine or universe configuration.
// Fatal: the run produces no output.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// InputShapeError reports a ratio series that cannot be classified:
// wrong length, non-finite values, or a missing ticker. Fatal; a
// malformed series is never substituted with a default label.
type InputShapeError struct {
	Ticker   string
	Expected int
	Actual   int
	Reason   string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("input shape error: %s: %s (expected %d sessions, got %d)",
		e.Ticker, e.Reason, e.Expected, e.Actual)
}

// UniverseMismatchError reports a prior snapshot whose ticker set
// diverges from the fixed universe. Never auto-reconciled.
type UniverseMismatchError struct {
	Ticker string
	Reason string
}

func (e *UniverseMismatchError) Error() string {
	return fmt.Sprintf("universe mismatch: %s: %s", e.Ticker, e.Reason)
}
