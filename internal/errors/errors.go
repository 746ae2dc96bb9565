package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingConfig     = errors.New("required configuration section missing")
	ErrUnknownEffect     = errors.New("effect not in capability table")
	ErrToolNotInstalled  = errors.New("required tool not installed")
	ErrUserAbort         = errors.New("operation cancelled")
)

// BoundsError reports an invalid random-parameter range in the
// augmentation config. Always fatal; the config has to be fixed.
type BoundsError struct {
	Effect string
	Param  string
	Lower  float64
	Upper  float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("upper bound for %s.%s must be greater than its lower bound (lower=%v upper=%v)",
		e.Effect, e.Param, e.Lower, e.Upper)
}

// UnsupportedRandomError marks a parameter whose value is list-shaped and
// therefore cannot be randomized. Deliberate rejection, not recoverable.
type UnsupportedRandomError struct {
	Effect string
	Param  string
}

func (e *UnsupportedRandomError) Error() string {
	return fmt.Sprintf("will not randomize list values for %s.%s", e.Effect, e.Param)
}

// ProcessError represents a failure in an external process
type ProcessError struct {
	Tool     string // "sox"
	Stage    string // "render", "version_check"
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed at %s (exit %d): %s", e.Tool, e.Stage, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s failed at %s (exit %d)", e.Tool, e.Stage, e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// NewProcessError creates a ProcessError
func NewProcessError(tool, stage string, exitCode int, stderr string, cause error) *ProcessError {
	return &ProcessError{
		Tool:     tool,
		Stage:    stage,
		ExitCode: exitCode,
		Stderr:   stderr,
		Cause:    cause,
	}
}
