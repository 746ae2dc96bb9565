package exec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	apperrors "github.com/dygy/guitarset/internal/errors"
)

// Result holds command execution output
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes the sox binary with context support
type Runner struct {
	SoxPath string
}

// NewRunner creates a new sox runner. An empty path resolves sox from PATH.
func NewRunner(soxPath string) *Runner {
	if soxPath == "" {
		soxPath = "sox"
	}
	return &Runner{SoxPath: soxPath}
}

// Sox executes sox with the given arguments
func (r *Runner) Sox(ctx context.Context, args ...string) (*Result, error) {
	return r.execute(ctx, r.SoxPath, args...)
}

// CheckInstalled verifies the sox binary is available
func (r *Runner) CheckInstalled(ctx context.Context) error {
	if _, err := r.execute(ctx, r.SoxPath, "--version"); err != nil {
		return fmt.Errorf("%w: sox (%s)", apperrors.ErrToolNotInstalled, r.SoxPath)
	}
	return nil
}

// execute runs a command and captures output
func (r *Runner) execute(ctx context.Context, name string, args ...string) (*Result, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
	}

	if err != nil {
		return result, apperrors.NewProcessError("sox", "render", result.ExitCode, result.Stderr, err)
	}

	return result, nil
}
