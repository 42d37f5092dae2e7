// Package hooks defines the auxiliary release steps bumpr can trigger
// around a version bump, each with its own configuration sub-namespace.
package hooks

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bumpr-dev/bumpr/internal/execute"
	"github.com/bumpr-dev/bumpr/internal/files"
	"github.com/bumpr-dev/bumpr/internal/version"
)

// Settings holds the resolved options for a single hook.
type Settings map[string]string

// Get returns the value for key, or the empty string.
func (s Settings) Get(key string) string {
	return s[key]
}

// GetBool interprets the value for key as a boolean. Anything other
// than a case-insensitive "true" is false.
func (s Settings) GetBool(key string) bool {
	return strings.EqualFold(s[key], "true")
}

// Clone returns a copy of the settings map.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// MergeSettings layers overrides on top of defaults without mutating
// either map.
func MergeSettings(defaults, overrides Settings) Settings {
	out := defaults.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Invocation carries everything a hook needs for one bump or prepare
// phase. Hooks either act directly (commands, API calls, edits to
// their own files) or contribute substitutions that the releaser
// applies to the project's version-bearing files.
type Invocation struct {
	Settings Settings
	Previous version.Version
	Version  version.Version

	// Replacements render templates against the version being written;
	// PreviousReplacements against the one it supersedes.
	Replacements         map[string]string
	PreviousReplacements map[string]string

	// Dir is the project directory; hook file settings resolve
	// relative to it.
	Dir string

	Rewriter *files.Rewriter
	Runner   *execute.Runner
	DryRun   bool
	Log      *slog.Logger

	substitutions []files.Substitution
}

// AddSubstitution queues an old→new replacement for the releaser to
// apply to the configured project files.
func (inv *Invocation) AddSubstitution(old, new string) {
	inv.substitutions = append(inv.substitutions, files.Substitution{Old: old, New: new})
}

// Substitutions returns the replacements queued by hooks so far.
func (inv *Invocation) Substitutions() []files.Substitution {
	return inv.substitutions
}

func (inv *Invocation) expand(template string) string {
	return execute.Expand(template, inv.Replacements)
}

func (inv *Invocation) expandPrevious(template string) string {
	return execute.Expand(template, inv.PreviousReplacements)
}

func (inv *Invocation) path(p string) string {
	if inv.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(inv.Dir, p)
}

func (inv *Invocation) logger() *slog.Logger {
	if inv.Log != nil {
		return inv.Log
	}
	return slog.Default()
}

// Hook is an optional release step keyed by its configuration
// sub-namespace.
type Hook interface {
	// Key is the unique hook identifier and config section name.
	Key() string

	// Defaults returns the hook's default settings.
	Defaults() Settings

	// Validate checks resolved settings before the release starts.
	Validate(s Settings) error

	// Bump runs after the new release version is computed.
	Bump(ctx context.Context, inv *Invocation) error

	// Prepare runs when moving to the next development version.
	Prepare(ctx context.Context, inv *Invocation) error
}

// Publisher is implemented by hooks that announce the release after
// the commits and tags exist everywhere they are going to, so remote
// services see the pushed tag rather than a stale head.
type Publisher interface {
	Publish(ctx context.Context, inv *Invocation) error
}

// Registry is the fixed, ordered set of known hooks. It is built once
// at startup and passed explicitly to the config resolver and the
// releaser.
type Registry struct {
	hooks []Hook
	byKey map[string]Hook
}

// NewRegistry builds a registry preserving the given hook order.
func NewRegistry(hooks ...Hook) *Registry {
	r := &Registry{byKey: make(map[string]Hook, len(hooks))}
	for _, h := range hooks {
		r.hooks = append(r.hooks, h)
		r.byKey[h.Key()] = h
	}
	return r
}

// Default returns the registry of all built-in hooks.
func Default() *Registry {
	return NewRegistry(
		&ReadTheDocHook{},
		&ChangelogHook{},
		&CommandsHook{},
		&ReplaceHook{},
		&GitHubHook{},
	)
}

// All returns the hooks in registration order.
func (r *Registry) All() []Hook {
	return r.hooks
}

// Get returns the hook with the given key.
func (r *Registry) Get(key string) (Hook, bool) {
	h, ok := r.byKey[key]
	return h, ok
}

// Keys returns the hook keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.hooks))
	for i, h := range r.hooks {
		keys[i] = h.Key()
	}
	return keys
}
