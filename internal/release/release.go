// Package release orchestrates a full bumpr run: extracting the
// current version, bumping it, rewriting the project files, running
// the configured hooks and commands, driving version control, and
// preparing the next development cycle.
package release

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bumpr-dev/bumpr/internal/config"
	"github.com/bumpr-dev/bumpr/internal/execute"
	"github.com/bumpr-dev/bumpr/internal/files"
	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/output"
	"github.com/bumpr-dev/bumpr/internal/vcs"
	"github.com/bumpr-dev/bumpr/internal/version"
)

// Options tune a Releaser beyond what the configuration carries.
// VCS and Now exist so tests can inject a fake engine and a fixed
// clock; nil values select the real implementations.
type Options struct {
	Dir string
	Out io.Writer
	Log *slog.Logger
	VCS vcs.VCS
	Now func() time.Time
}

// Releaser runs the release pipeline for one resolved configuration.
type Releaser struct {
	cfg      *config.Config
	registry *hooks.Registry
	dir      string
	out      io.Writer
	log      *slog.Logger

	vcs      vcs.VCS
	runner   *execute.Runner
	rewriter *files.Rewriter
	now      func() time.Time

	current version.Version
	target  version.Version
	next    version.Version
}

// New builds a Releaser and extracts the current version from the
// configured file or module.
func New(cfg *config.Config, registry *hooks.Registry, opts Options) (*Releaser, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	dryrun := boolVal(cfg.DryRun)
	engine := opts.VCS
	if engine == nil {
		var err error
		engine, err = vcs.New(strVal(cfg.VCS), dir, dryrun)
		if err != nil {
			return nil, err
		}
	}

	r := &Releaser{
		cfg:      cfg,
		registry: registry,
		dir:      dir,
		out:      out,
		log:      log,
		vcs:      engine,
		runner: &execute.Runner{
			Dir:     dir,
			Verbose: boolVal(cfg.Verbose),
			DryRun:  dryrun,
			Log:     log,
		},
		rewriter: &files.Rewriter{DryRun: dryrun, Log: log},
		now:      now,
	}

	current, err := r.extractVersion()
	if err != nil {
		return nil, err
	}
	r.current = current
	r.target = transition(current, cfg.Bump)
	r.next = transition(r.target, cfg.Prepare)
	return r, nil
}

// Current returns the version read from the project files.
func (r *Releaser) Current() version.Version { return r.current }

// Target returns the version this run releases.
func (r *Releaser) Target() version.Version { return r.target }

// Next returns the development version the prepare step moves to.
func (r *Releaser) Next() version.Version { return r.next }

// Release runs the full pipeline. With prepare_only set only the
// prepare step runs; with bump_only everything after the bump is
// skipped.
func (r *Releaser) Release(ctx context.Context) error {
	if r.needsVCS() {
		if err := r.vcs.Validate(ctx); err != nil {
			return err
		}
	}

	if boolVal(r.cfg.PrepareOnly) {
		// The version on disk is treated as already released.
		r.target = r.current
		r.next = transition(r.target, r.cfg.Prepare)
		return r.Prepare(ctx)
	}

	if err := r.Clean(ctx); err != nil {
		return err
	}
	if err := r.Test(ctx); err != nil {
		return err
	}
	if err := r.Bump(ctx); err != nil {
		return err
	}
	if boolVal(r.cfg.BumpOnly) {
		return nil
	}
	if err := r.Publish(ctx); err != nil {
		return err
	}
	if err := r.Prepare(ctx); err != nil {
		return err
	}
	if err := r.Push(ctx); err != nil {
		return err
	}
	return r.publishHooks(ctx)
}

// publishHooks runs the publish phase of every enabled hook that has
// one. It runs last so remote services see the pushed tag.
func (r *Releaser) publishHooks(ctx context.Context) error {
	inv := r.invocation(r.current, r.target)
	for _, h := range r.registry.All() {
		p, ok := h.(hooks.Publisher)
		if !ok {
			continue
		}
		settings, enabled := r.cfg.HookSettings(h.Key())
		if !enabled {
			continue
		}
		inv.Settings = settings
		if err := p.Publish(ctx, inv); err != nil {
			return fmt.Errorf("hook %s: %w", h.Key(), err)
		}
	}
	return nil
}

// Clean runs the configured clean command, if any.
func (r *Releaser) Clean(ctx context.Context) error {
	command := strVal(r.cfg.Clean)
	if command == "" {
		return nil
	}
	r.log.Info("cleaning", "command", command)
	_, err := r.runner.Run(ctx, command, nil)
	return err
}

// Test runs the configured test command unless tests are skipped.
func (r *Releaser) Test(ctx context.Context) error {
	command := strVal(r.cfg.Tests)
	if command == "" || boolVal(r.cfg.SkipTests) {
		return nil
	}
	r.log.Info("running tests", "command", command)
	_, err := r.runner.Run(ctx, command, nil)
	return err
}

// Bump rewrites the project files to the target version, runs the
// bump phase of every enabled hook, and commits and tags the result.
func (r *Releaser) Bump(ctx context.Context) error {
	r.log.Info("bumping version", "from", r.current.String(), "to", r.target.String())

	inv := r.invocation(r.current, r.target)
	if err := r.runHooks(ctx, inv, hooks.Hook.Bump); err != nil {
		return err
	}
	// Hook substitutions go first: their markers may embed the old
	// version string, which the generic substitution would mangle.
	inv.AddSubstitution(r.current.String(), r.target.String())
	if err := r.rewriteFiles(inv.Substitutions()); err != nil {
		return err
	}

	if boolVal(r.cfg.Commit) {
		message := execute.Expand(strVal(r.cfg.Bump.Message), inv.Replacements)
		if err := r.vcs.Commit(ctx, message); err != nil {
			return fmt.Errorf("committing bump: %w", err)
		}
	}
	if boolVal(r.cfg.Tag) {
		name := execute.Expand(strVal(r.cfg.TagFormat), inv.Replacements)
		annotation := execute.Expand(strVal(r.cfg.TagAnnotation), inv.Replacements)
		if err := r.vcs.Tag(ctx, name, annotation); err != nil {
			return fmt.Errorf("tagging %s: %w", name, err)
		}
	}
	return nil
}

// Publish runs the configured publish command, if any.
func (r *Releaser) Publish(ctx context.Context) error {
	command := strVal(r.cfg.Publish)
	if command == "" {
		return nil
	}
	r.log.Info("publishing", "command", command)
	_, err := r.runner.Run(ctx, command, r.replacements(r.target))
	return err
}

// Prepare moves the project to the next development version and
// commits the change. A prepare step that leaves the version
// untouched is skipped.
func (r *Releaser) Prepare(ctx context.Context) error {
	if r.next.String() == r.target.String() {
		r.log.Info("prepare step leaves version unchanged, skipping")
		return nil
	}
	r.log.Info("preparing next version", "from", r.target.String(), "to", r.next.String())

	inv := r.invocation(r.target, r.next)
	if err := r.runHooks(ctx, inv, hooks.Hook.Prepare); err != nil {
		return err
	}
	inv.AddSubstitution(r.target.String(), r.next.String())
	if err := r.rewriteFiles(inv.Substitutions()); err != nil {
		return err
	}

	if boolVal(r.cfg.Commit) {
		message := execute.Expand(strVal(r.cfg.Prepare.Message), inv.Replacements)
		if err := r.vcs.Commit(ctx, message); err != nil {
			return fmt.Errorf("committing prepare: %w", err)
		}
	}
	return nil
}

// Push publishes commits and tags when push is enabled.
func (r *Releaser) Push(ctx context.Context) error {
	if !boolVal(r.cfg.Push) {
		return nil
	}
	return r.vcs.Push(ctx)
}

func (r *Releaser) needsVCS() bool {
	return boolVal(r.cfg.Commit) || boolVal(r.cfg.Tag) || boolVal(r.cfg.Push)
}

func (r *Releaser) invocation(previous, next version.Version) *hooks.Invocation {
	return &hooks.Invocation{
		Previous:             previous,
		Version:              next,
		Replacements:         r.replacements(next),
		PreviousReplacements: r.replacements(previous),
		Dir:                  r.dir,
		Rewriter:             r.rewriter,
		Runner:               r.runner,
		DryRun:               boolVal(r.cfg.DryRun),
		Log:                  r.log,
	}
}

// runHooks runs one phase of every enabled hook in registry order,
// swapping in each hook's resolved settings.
func (r *Releaser) runHooks(ctx context.Context, inv *hooks.Invocation, phase func(hooks.Hook, context.Context, *hooks.Invocation) error) error {
	for _, h := range r.registry.All() {
		settings, enabled := r.cfg.HookSettings(h.Key())
		if !enabled {
			continue
		}
		inv.Settings = settings
		if err := phase(h, ctx, inv); err != nil {
			return fmt.Errorf("hook %s: %w", h.Key(), err)
		}
	}
	return nil
}

// rewriteFiles applies the accumulated substitutions to the version
// file and every extra configured file, printing a diff preview on
// dry runs.
func (r *Releaser) rewriteFiles(subs []files.Substitution) error {
	for _, path := range r.paths() {
		if boolVal(r.cfg.DryRun) {
			before, after, err := files.Preview(path, subs)
			if err != nil {
				return err
			}
			if err := output.WriteDiff(r.out, path, before, after); err != nil {
				return err
			}
			continue
		}
		if _, err := r.rewriter.Replace(path, subs); err != nil {
			return err
		}
	}
	return nil
}

// paths lists every file holding the version string, the main file
// first.
func (r *Releaser) paths() []string {
	var out []string
	if main := r.versionFile(); main != "" {
		out = append(out, main)
	}
	if r.cfg.Files != nil {
		for _, f := range *r.cfg.Files {
			out = append(out, r.resolvePath(f))
		}
	}
	return out
}

func (r *Releaser) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.dir, path)
}

func (r *Releaser) versionFile() string {
	if file := strVal(r.cfg.File); file != "" {
		return r.resolvePath(file)
	}
	if module := strVal(r.cfg.Module); module != "" {
		return moduleFile(r.dir, module)
	}
	return ""
}

func (r *Releaser) extractVersion() (version.Version, error) {
	path := r.versionFile()
	if path == "" {
		return version.Version{}, fmt.Errorf("no version file configured")
	}
	if module := strVal(r.cfg.Module); module != "" && strVal(r.cfg.File) == "" {
		return files.ExtractAttribute(path, strVal(r.cfg.Attribute))
	}
	return files.ExtractVersion(path, strVal(r.cfg.Pattern))
}

// replacements builds the template values for a version: the version
// string, its parts, the formatted tag, and today's date.
func (r *Releaser) replacements(v version.Version) map[string]string {
	repl := map[string]string{
		"version": v.String(),
		"major":   strconv.Itoa(v.Major),
		"minor":   strconv.Itoa(v.Minor),
		"patch":   strconv.Itoa(v.Patch),
		"date":    r.now().Format("2006-01-02"),
	}
	repl["tag"] = execute.Expand(strVal(r.cfg.TagFormat), repl)
	return repl
}

// transition applies one configured step to a version: bump the
// selected part, drop the suffix when unsuffixing, and apply any
// requested suffix.
func transition(v version.Version, step *config.StepConfig) version.Version {
	next := v
	if step == nil {
		return next
	}
	if step.Part != nil && *step.Part != version.PartNone {
		next = next.Bump(*step.Part, "")
	} else if step.Unsuffix != nil && *step.Unsuffix {
		next = next.Finalize()
	}
	if step.Suffix != nil && *step.Suffix != "" {
		next = next.WithSuffix(*step.Suffix, nil)
	}
	return next
}

// moduleFile maps a dotted module name to the file holding its
// version attribute, preferring pkg/mod.py over pkg/mod/__init__.py.
func moduleFile(dir, module string) string {
	base := filepath.Join(dir, filepath.Join(strings.Split(module, ".")...))
	if fi, err := os.Stat(base + ".py"); err == nil && !fi.IsDir() {
		return base + ".py"
	}
	return filepath.Join(base, "__init__.py")
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolVal(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
