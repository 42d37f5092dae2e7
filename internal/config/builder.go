package config

import "github.com/bumpr-dev/bumpr/internal/hooks"

// Builder constructs a Config by layering overrides on top of
// defaults. Precedence is per field, not per layer: a field a later
// override leaves nil falls through to whatever the earlier layers
// produced.
type Builder struct {
	registry  *hooks.Registry
	overrides []*Config
}

// NewBuilder creates a configuration builder. The registry defines
// which hook sub-namespaces exist and supplies their defaults when a
// layer enables one.
func NewBuilder(registry *hooks.Registry) *Builder {
	return &Builder{registry: registry}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults
// and applying all overrides. The result always retains the full
// default schema; overrides only add or replace values.
func (b *Builder) Build() *Config {
	cfg := CreateDefaultConfiguration()
	for _, override := range b.overrides {
		b.merge(cfg, override)
	}
	return cfg
}

// merge applies non-nil fields from src to dst.
func (b *Builder) merge(dst, src *Config) {
	if src.File != nil {
		dst.File = src.File
	}
	if src.Pattern != nil {
		dst.Pattern = src.Pattern
	}
	if src.Files != nil {
		dst.Files = src.Files
	}
	if src.Module != nil {
		dst.Module = src.Module
	}
	if src.Attribute != nil {
		dst.Attribute = src.Attribute
	}
	if src.VCS != nil {
		dst.VCS = src.VCS
	}
	if src.Commit != nil {
		dst.Commit = src.Commit
	}
	if src.Tag != nil {
		dst.Tag = src.Tag
	}
	if src.TagFormat != nil {
		dst.TagFormat = src.TagFormat
	}
	if src.TagAnnotation != nil {
		dst.TagAnnotation = src.TagAnnotation
	}
	if src.Push != nil {
		dst.Push = src.Push
	}
	if src.Verbose != nil {
		dst.Verbose = src.Verbose
	}
	if src.DryRun != nil {
		dst.DryRun = src.DryRun
	}
	if src.Clean != nil {
		dst.Clean = src.Clean
	}
	if src.Tests != nil {
		dst.Tests = src.Tests
	}
	if src.SkipTests != nil {
		dst.SkipTests = src.SkipTests
	}
	if src.Publish != nil {
		dst.Publish = src.Publish
	}
	if src.BumpOnly != nil {
		dst.BumpOnly = src.BumpOnly
	}
	if src.PrepareOnly != nil {
		dst.PrepareOnly = src.PrepareOnly
	}

	if src.Bump != nil {
		mergeStep(dst.Bump, src.Bump)
	}
	if src.Prepare != nil {
		mergeStep(dst.Prepare, src.Prepare)
	}

	// Hook sub-namespaces merge per key. The first layer that enables
	// a hook gets the hook's own defaults as a base; later layers
	// override individual settings.
	for key, settings := range src.Hooks {
		existing, enabled := dst.Hooks[key]
		if !enabled {
			existing = b.hookDefaults(key)
		}
		dst.Hooks[key] = hooks.MergeSettings(existing, settings)
	}
}

func (b *Builder) hookDefaults(key string) hooks.Settings {
	if b.registry != nil {
		if h, ok := b.registry.Get(key); ok {
			return h.Defaults()
		}
	}
	return hooks.Settings{}
}

func mergeStep(dst, src *StepConfig) {
	if src.Part != nil {
		dst.Part = src.Part
	}
	if src.Suffix != nil {
		dst.Suffix = src.Suffix
	}
	if src.Unsuffix != nil {
		dst.Unsuffix = src.Unsuffix
	}
	if src.Message != nil {
		dst.Message = src.Message
	}
}
