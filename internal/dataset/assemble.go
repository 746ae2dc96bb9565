package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/dygy/guitarset/internal/augment"
	"github.com/dygy/guitarset/internal/config"
	"github.com/dygy/guitarset/internal/effects"
	apperrors "github.com/dygy/guitarset/internal/errors"
	"github.com/dygy/guitarset/internal/exec"
	"github.com/dygy/guitarset/internal/features"
	"github.com/dygy/guitarset/internal/progress"
	"github.com/dygy/guitarset/internal/workspace"
)

// Options controls one assembly run.
type Options struct {
	Source    string // track-kind key into the registry
	Subsample int    // draw this many files with replacement; 0 uses all
	NAugment  int    // augmented variants per source file
	Exercise  augment.Exercise

	// WriteEffectsTo, when non-empty, persists augmented renders under
	// <data>/interim/<WriteEffectsTo>_<SOURCE> after confirmation.
	WriteEffectsTo string

	// MakeTrainingSet persists the tensor and label table under the
	// processed directory, overwriting previous artifacts.
	MakeTrainingSet bool

	Seed      int64
	AssumeYes bool // skip the confirmation prompt
	SoxPath   string
	Verbose   bool

	In  io.Reader // confirmation input, defaults to stdin
	Out io.Writer // progress output, defaults to stdout
}

// Assemble runs the full augmentation pipeline: enumerate sources, apply
// the effect chain per file and repetition, pad features into one tensor
// and collect labels into a table. The run is sequential; the first error
// aborts it.
func Assemble(ctx context.Context, reg Registry, opts Options) (features.Batch, LabelTable, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.NAugment < 1 {
		opts.NAugment = 1
	}
	reporter := progress.NewReporter(opts.Out, opts.Verbose)

	reporter.StartStage(progress.StageConfigure)
	cfg, err := config.Load(reg.Config)
	if err != nil {
		return nil, LabelTable{}, err
	}
	kind, ok := reg.Kinds[opts.Source]
	if !ok {
		return nil, LabelTable{}, fmt.Errorf("unknown track kind %q", opts.Source)
	}
	reporter.StageComplete("Loaded %s", reg.Config)
	reporter.Update("train models: %s", strings.Join(cfg.Pipeline.TrainModels, ", "))

	reporter.StartStage(progress.StageEnumerate)
	files, err := Enumerate(kind, cfg.Pipeline.TrainModels)
	if err != nil {
		return nil, LabelTable{}, err
	}
	if len(files) == 0 {
		return nil, LabelTable{}, fmt.Errorf("%w: no .wav files under %s", apperrors.ErrFileNotFound, kind.Trace)
	}

	sampler := augment.NewSampler(opts.Seed)
	if opts.Subsample > 0 {
		reporter.StageComplete("Subsampling %d files from %d available", opts.Subsample, len(files))
		// with replacement: the same file may be drawn more than once
		picked := make([]TrackFile, opts.Subsample)
		for i := range picked {
			picked[i] = files[sampler.Intn(len(files))]
		}
		files = picked
	} else {
		reporter.StageComplete("Using all available data, %d files", len(files))
	}

	reporter.StartStage(progress.StageValidate)
	valid, invalid := effects.Validate(cfg.Augmentation.Effects)
	if !valid {
		reporter.Warning("unsupported effects in config: %s", strings.Join(invalid, ", "))
	}
	// The validation outcome deliberately does not gate the run; only the
	// active list decides which effects participate. Unsupported names
	// that survive the active filter fail later, at application time.
	chain := effects.Order(filterActive(cfg.Augmentation.Effects, cfg.Augmentation.Active))
	reporter.StageComplete("Effect chain: %s", chainNames(chain))

	var writeDir string
	if opts.WriteEffectsTo != "" {
		writeDir = filepath.Join(reg.InterimDir(), opts.WriteEffectsTo+"_"+strings.ToUpper(opts.Source))
		if !opts.AssumeYes {
			if err := confirm(opts.In, opts.Out, len(files)*opts.NAugment, writeDir); err != nil {
				return nil, LabelTable{}, err
			}
		}
		for _, model := range cfg.Pipeline.TrainModels {
			if err := os.MkdirAll(filepath.Join(writeDir, model), 0o755); err != nil {
				return nil, LabelTable{}, fmt.Errorf("create output dir: %w", err)
			}
		}
		reporter.Update("write directory: %s", writeDir)
	}

	runner := exec.NewRunner(opts.SoxPath)
	if err := runner.CheckInstalled(ctx); err != nil {
		return nil, LabelTable{}, err
	}
	ws, err := workspace.Create()
	if err != nil {
		return nil, LabelTable{}, err
	}
	defer ws.Cleanup()

	aug := augment.New(effects.NewTransformer(runner), ws, chain, opts.Exercise, sampler)
	aug.WriteDir = writeDir

	reporter.StartStage(progress.StageAugment)
	total := len(files) * opts.NAugment
	p := mpb.New(mpb.WithOutput(reporter.Out()), mpb.WithWidth(64))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Augmenting: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	allLabels := make([]augment.Labels, 0, total)
	allVectors := make([][][]float64, 0, total)
	for _, f := range files {
		for n := 0; n < opts.NAugment; n++ {
			labels, vec, err := aug.Track(ctx, f.Path, f.Model, n)
			if err != nil {
				bar.Abort(true)
				p.Wait()
				return nil, LabelTable{}, fmt.Errorf("augment %s (rep %d): %w", f.Path, n, err)
			}
			allLabels = append(allLabels, labels)
			allVectors = append(allVectors, features.ExpandDims(vec))
			bar.Increment()
		}
	}
	p.Wait()

	reporter.StartStage(progress.StageAssemble)
	batch, err := features.Pad(allVectors)
	if err != nil {
		return nil, LabelTable{}, err
	}
	table := BuildTable(allLabels, files, opts.NAugment)
	samples, rows, _ := batch.Shape()
	reporter.StageComplete("Tensor %dx%dx1, %d label rows", samples, rows, len(table.Rows))

	if opts.MakeTrainingSet {
		if err := persist(reg, opts.Source, batch, table); err != nil {
			return nil, LabelTable{}, err
		}
		reporter.Done(reg.ProcessedDir())
	} else {
		reporter.Done("")
	}

	return batch, table, nil
}

// filterActive reduces the configured effects to the active subset. The
// "active" key itself is a selection instruction, not an augmentation
// parameter, so it never reaches the augmenter.
func filterActive(specs map[string]effects.Spec, active []string) map[string]effects.Spec {
	out := map[string]effects.Spec{}
	for _, name := range active {
		if spec, ok := specs[name]; ok {
			out[name] = spec
		}
	}
	return out
}

// confirm blocks on the literal input "1"; anything else is a clean user
// abort.
func confirm(in io.Reader, out io.Writer, count int, dir string) error {
	fmt.Fprintf(out, "Are you sure you want to write %d files to %q?\n", count, dir)
	fmt.Fprintln(out, "1 to proceed, any other key to terminate")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "1" {
		return apperrors.ErrUserAbort
	}
	return nil
}

// persist overwrites the processed artifacts for this track kind.
func persist(reg Registry, source string, batch features.Batch, table LabelTable) error {
	dir := reg.ProcessedDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}

	if err := WriteNPY(filepath.Join(dir, "training_X_"+source+".npy"), batch); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "training_Y_"+source+".csv"))
	if err != nil {
		return fmt.Errorf("create label table: %w", err)
	}
	defer f.Close()
	return table.WriteCSV(f)
}

func chainNames(chain effects.Chain) string {
	names := make([]string, len(chain))
	for i, e := range chain {
		names[i] = e.Name
	}
	return strings.Join(names, " -> ")
}
