// Package bumpr provides a public Go API for releasing a new project
// version: bumping the version string in the project files, running
// the configured hooks, committing, tagging, and preparing the next
// development cycle.
//
// Basic usage:
//
//	result, err := bumpr.Release(context.Background(), bumpr.Options{
//	    Dir: "/path/to/project",
//	})
//	fmt.Println(result.Released) // "1.2.3"
package bumpr

import (
	"context"
	"io"
	"log/slog"

	"github.com/bumpr-dev/bumpr/internal/config"
	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/release"
	"github.com/bumpr-dev/bumpr/internal/version"
)

// Options configures a release run. Configuration files discovered in
// Dir (setup.cfg, pyproject.toml, bumpr.rc) still apply; options here
// override them the same way command-line flags do.
type Options struct {
	// Dir is the project directory. Defaults to "." if empty.
	Dir string

	// ConfigPath is an explicit rc file path. If empty, bumpr.rc and
	// .bumpr.rc are auto-detected in Dir.
	ConfigPath string

	// File is the version-bearing file, overriding the configured one.
	File string

	// Part selects the version part to bump: "major", "minor" or
	// "patch". Empty means use the configured part.
	Part string

	// Suffix is appended to the bumped version.
	Suffix string

	// DryRun shows what would change without touching anything.
	DryRun bool

	// Verbose enables debug logging.
	Verbose bool

	// BumpOnly stops after the bump step.
	BumpOnly bool

	// PrepareOnly only moves to the next development version.
	PrepareOnly bool

	// Out receives dry-run previews. Defaults to os.Stdout.
	Out io.Writer

	// Logger overrides the default logger.
	Logger *slog.Logger
}

// Result reports the versions a release run moved through.
type Result struct {
	// Previous is the version found in the project files.
	Previous string

	// Released is the version this run released.
	Released string

	// Next is the development version the project was left at, equal
	// to Released when no prepare step ran.
	Next string
}

// Release runs the full release pipeline in opts.Dir.
func Release(ctx context.Context, opts Options) (*Result, error) {
	registry := hooks.Default()

	args, err := overrides(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(registry, config.Options{
		Dir:    opts.Dir,
		RCFile: opts.ConfigPath,
		Args:   args,
	})
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := config.ValidateIn(cfg, registry, dir); err != nil {
		return nil, err
	}

	r, err := release.New(cfg, registry, release.Options{
		Dir: dir,
		Out: opts.Out,
		Log: opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	if err := r.Release(ctx); err != nil {
		return nil, err
	}

	return &Result{
		Previous: r.Current().String(),
		Released: r.Target().String(),
		Next:     r.Next().String(),
	}, nil
}

// overrides maps the options to a command-line-style override layer:
// only explicitly requested values are set, everything else falls
// through to the configuration files.
func overrides(opts Options) (*config.Config, error) {
	cfg := &config.Config{}

	if opts.File != "" {
		cfg.File = &opts.File
	}

	step := &config.StepConfig{}
	if opts.Part != "" {
		part, err := version.ParsePart(opts.Part)
		if err != nil {
			return nil, err
		}
		step.Part = &part
	}
	if opts.Suffix != "" {
		step.Suffix = &opts.Suffix
	}
	if step.Part != nil || step.Suffix != nil {
		cfg.Bump = step
	}

	if opts.DryRun {
		cfg.DryRun = &opts.DryRun
	}
	if opts.Verbose {
		cfg.Verbose = &opts.Verbose
	}
	if opts.BumpOnly {
		cfg.BumpOnly = &opts.BumpOnly
	}
	if opts.PrepareOnly {
		cfg.PrepareOnly = &opts.PrepareOnly
	}

	return cfg, nil
}
