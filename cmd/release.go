package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bumpr-dev/bumpr/internal/config"
	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/release"
	"github.com/bumpr-dev/bumpr/internal/version"
)

func releaseRunE(cmd *cobra.Command, args []string) error {
	registry := hooks.Default()

	cfg, err := resolveConfig(cmd, args, registry)
	if err != nil {
		return err
	}
	if err := config.ValidateIn(cfg, registry, flagDir); err != nil {
		return err
	}

	r, err := release.New(cfg, registry, release.Options{
		Dir: flagDir,
		Out: cmd.OutOrStdout(),
		Log: newLogger(cfg),
	})
	if err != nil {
		return err
	}

	if err := r.Release(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Bumped version %s to %s\n", r.Current(), r.Target())
	return nil
}

// resolveConfig assembles the configuration from all layers, with the
// command line as the topmost one.
func resolveConfig(cmd *cobra.Command, args []string, registry *hooks.Registry) (*config.Config, error) {
	return config.Resolve(registry, config.Options{
		Dir:    flagDir,
		RCFile: flagConfig,
		Args:   argsConfig(cmd, args),
	})
}

// argsConfig reduces the command line to a Config carrying only the
// values that were explicitly supplied, so anything left out falls
// through to the file layers.
func argsConfig(cmd *cobra.Command, args []string) *config.Config {
	cfg := &config.Config{}
	flags := cmd.Flags()

	if len(args) > 0 {
		cfg.File = &args[0]
	}

	step := &config.StepConfig{}
	switch {
	case flagMajor:
		step.Part = partPtr(version.PartMajor)
	case flagMinor:
		step.Part = partPtr(version.PartMinor)
	case flagPatch:
		step.Part = partPtr(version.PartPatch)
	}
	if flags.Changed("suffix") {
		step.Suffix = &flagSuffix
	}
	if step.Part != nil || step.Suffix != nil {
		cfg.Bump = step
	}

	cfg.Commit = pairValue(flags, "commit", "no-commit")
	cfg.Push = pairValue(flags, "push", "no-push")
	cfg.SkipTests = pairValue(flags, "skip-tests", "no-skip-tests")
	cfg.BumpOnly = pairValue(flags, "bump-only", "no-bump-only")
	cfg.PrepareOnly = pairValue(flags, "prepare-only", "no-prepare-only")

	if flags.Changed("verbose") {
		cfg.Verbose = &flagVerbose
	}
	if flags.Changed("dryrun") {
		cfg.DryRun = &flagDryRun
	}

	return cfg
}

// pairValue maps a pair of enable/disable flags to a tri-state value:
// nil when neither form was given. The parsed value is honored, so an
// explicit --push=false is false, not true.
func pairValue(flags *pflag.FlagSet, name, inverse string) *bool {
	if flags.Changed(name) {
		v, _ := flags.GetBool(name)
		return &v
	}
	if flags.Changed(inverse) {
		v, _ := flags.GetBool(inverse)
		v = !v
		return &v
	}
	return nil
}

func partPtr(p version.Part) *version.Part {
	return &p
}

// newLogger builds the slog logger for a run, honoring the resolved
// verbose setting.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose != nil && *cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
