package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dygy/guitarset/internal/augment"
	"github.com/dygy/guitarset/internal/config"
	"github.com/dygy/guitarset/internal/dataset"
	"github.com/dygy/guitarset/internal/effects"
	apperrors "github.com/dygy/guitarset/internal/errors"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "guitarset",
	Short: "Generate augmented training data for guitar chord/note models",
	Long: `guitarset loads source guitar recordings, pushes them through a
configurable sox effect chain with randomized or fixed parameters, and
assembles MFCC feature tensors plus label tables for model training.

Pipeline: config -> enumerate -> validate -> augment -> assemble`,
	Version: version,
}

var augmentCmd = &cobra.Command{
	Use:   "augment",
	Short: "Run the augmentation pipeline",
	Long: `Augment every training recording of a track kind and assemble the
feature tensor and label table.

Examples:
  guitarset augment --source power --n-augment 2 --make-training-set
  guitarset augment --source sn --exercise classification --subsample 5
  guitarset augment --write-effects-to crunchy --yes`,
	RunE: runAugment,
}

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "Inspect the effect capability table",
}

var effectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported effects and their parameter defaults",
	RunE:  runEffectsList,
}

var effectsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Cross-check a config's effects against the capability table",
	RunE:  runEffectsValidate,
}

var (
	sourceKind      string
	configPath      string
	dataDir         string
	subsample       int
	nAugment        int
	exercise        string
	writeEffectsTo  string
	makeTrainingSet bool
	seed            int64
	soxPath         string
	assumeYes       bool
	verbose         bool
)

func init() {
	augmentCmd.Flags().StringVarP(&sourceKind, "source", "s", "power", "track kind (power, sn)")
	augmentCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "run configuration file")
	augmentCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "data", "data directory root")
	augmentCmd.Flags().IntVar(&subsample, "subsample", 0, "augment only k files, drawn with replacement (0 = all)")
	augmentCmd.Flags().IntVarP(&nAugment, "n-augment", "n", 1, "augmented variants per source file")
	augmentCmd.Flags().StringVarP(&exercise, "exercise", "e", "regression", "randomization policy (regression, classification)")
	augmentCmd.Flags().StringVar(&writeEffectsTo, "write-effects-to", "", "also write augmented .wav files under this interim subdirectory")
	augmentCmd.Flags().BoolVar(&makeTrainingSet, "make-training-set", false, "persist tensor and label table to the processed directory")
	augmentCmd.Flags().Int64Var(&seed, "seed", augment.DefaultSeed, "random seed for the run")
	augmentCmd.Flags().StringVar(&soxPath, "sox", "", "path to the sox binary (default: resolve from PATH)")
	augmentCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the destructive-write confirmation prompt")
	augmentCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose progress output")

	effectsValidateCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "run configuration file")

	effectsCmd.AddCommand(effectsListCmd)
	effectsCmd.AddCommand(effectsValidateCmd)
	rootCmd.AddCommand(augmentCmd)
	rootCmd.AddCommand(effectsCmd)
}

func runAugment(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ex := augment.Exercise(strings.ToLower(exercise))
	if ex != augment.Regression && ex != augment.Classification {
		return fmt.Errorf("unknown exercise %q", exercise)
	}

	reg := dataset.DefaultRegistry(dataDir, configPath)
	opts := dataset.Options{
		Source:          sourceKind,
		Subsample:       subsample,
		NAugment:        nAugment,
		Exercise:        ex,
		WriteEffectsTo:  writeEffectsTo,
		MakeTrainingSet: makeTrainingSet,
		Seed:            seed,
		AssumeYes:       assumeYes,
		SoxPath:         soxPath,
		Verbose:         verbose,
	}

	_, _, err := dataset.Assemble(ctx, reg, opts)
	if errors.Is(err, apperrors.ErrUserAbort) {
		// deliberate termination, not a crash
		fmt.Fprintln(os.Stderr, "Operation cancelled")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func runEffectsList(cmd *cobra.Command, args []string) error {
	for _, c := range effects.Capabilities() {
		fmt.Println(c.Name)
		for _, p := range c.Params {
			fmt.Printf("  %-20s default %v\n", p.Name, p.Default)
		}
	}
	return nil
}

func runEffectsValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	valid, invalid := effects.Validate(cfg.Augmentation.Effects)
	if valid {
		fmt.Printf("All %d configured effects are supported\n", len(cfg.Augmentation.Effects))
		return nil
	}
	fmt.Printf("Unsupported effects: %s\n", strings.Join(invalid, ", "))
	return fmt.Errorf("%w: %s", apperrors.ErrUnknownEffect, strings.Join(invalid, ", "))
}
