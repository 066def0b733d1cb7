package domain

import "fmt"

// Exit codes form a CI contract and must not be remapped.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfigOrParse = 2
)

// NotFoundError reports a missing target, rule file, or document.
// Callers use it to tell "nothing to validate" apart from broken input.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// ParseError reports malformed structured text at a named path.
// A loader never substitutes an empty document for a broken one.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports an invalid request: unknown validator name,
// unknown rule-file key in strict-keys mode, bad flag combination.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// ValidationFailedError signals that well-formed input violated rules.
// It carries no findings; those are already in the run summary or report.
type ValidationFailedError struct {
	Msg string
}

func (e *ValidationFailedError) Error() string { return e.Msg }
