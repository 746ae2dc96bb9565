package progress

import (
	"fmt"
	"io"
	"time"
)

// Stage represents a processing stage
type Stage struct {
	Number      int
	Total       int
	Name        string
	Description string
}

// Predefined stages of the augmentation pipeline
var (
	StageConfigure = Stage{1, 5, "configure", "Loading configuration..."}
	StageEnumerate = Stage{2, 5, "enumerate", "Enumerating source files..."}
	StageValidate  = Stage{3, 5, "validate", "Validating configured effects..."}
	StageAugment   = Stage{4, 5, "augment", "Augmenting tracks... (this may take a moment)"}
	StageAssemble  = Stage{5, 5, "assemble", "Assembling feature tensor and labels..."}
)

// Reporter handles CLI progress output
type Reporter struct {
	out       io.Writer
	startTime time.Time
	verbose   bool
}

// NewReporter creates a new progress reporter
func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{
		out:       out,
		startTime: time.Now(),
		verbose:   verbose,
	}
}

// Out exposes the underlying writer for components that draw their own
// progress, like the per-track bar.
func (r *Reporter) Out() io.Writer { return r.out }

// StartStage announces the beginning of a processing stage
func (r *Reporter) StartStage(stage Stage) {
	fmt.Fprintf(r.out, "[%d/%d] %s\n", stage.Number, stage.Total, stage.Description)
}

// Update shows a sub-progress message within a stage
func (r *Reporter) Update(format string, args ...any) {
	if r.verbose {
		fmt.Fprintf(r.out, "       %s\n", fmt.Sprintf(format, args...))
	}
}

// StageComplete shows completion message for a stage
func (r *Reporter) StageComplete(format string, args ...any) {
	fmt.Fprintf(r.out, "       %s\n", fmt.Sprintf(format, args...))
}

// Done announces successful completion
func (r *Reporter) Done(outputDir string) {
	elapsed := time.Since(r.startTime)
	fmt.Fprintln(r.out, "Done! Dataset assembled.")
	if outputDir != "" {
		fmt.Fprintf(r.out, "Wrote training data to %q\n", outputDir)
	}
	fmt.Fprintf(r.out, "Completed in %.1f seconds\n", elapsed.Seconds())
}

// Warning announces a non-fatal warning
func (r *Reporter) Warning(format string, args ...any) {
	fmt.Fprintf(r.out, "Warning: %s\n", fmt.Sprintf(format, args...))
}
