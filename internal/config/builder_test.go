package config

import (
	"testing"

	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/version"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := CreateDefaultConfiguration()

	require.Equal(t, "", *cfg.File)
	require.NotEmpty(t, *cfg.Pattern)
	require.Empty(t, *cfg.Files)
	require.Equal(t, "git", *cfg.VCS)
	require.True(t, *cfg.Commit)
	require.True(t, *cfg.Tag)
	require.False(t, *cfg.Push)
	require.False(t, *cfg.DryRun)
	require.False(t, *cfg.SkipTests)
	require.Equal(t, version.PartPatch, *cfg.Bump.Part)
	require.True(t, *cfg.Bump.Unsuffix)
	require.Equal(t, version.PartNone, *cfg.Prepare.Part)
	require.False(t, *cfg.Prepare.Unsuffix)

	// Every hook starts disabled.
	require.NotNil(t, cfg.Hooks)
	for _, key := range hooks.Default().Keys() {
		require.False(t, cfg.HookEnabled(key))
	}
}

func TestBuilder_NoOverrides(t *testing.T) {
	cfg := NewBuilder(hooks.Default()).Build()
	require.Equal(t, CreateDefaultConfiguration(), cfg)
}

func TestBuilder_EmptyLayersKeepDefaults(t *testing.T) {
	cfg := NewBuilder(hooks.Default()).Add(&Config{}).Add(&Config{}).Build()
	require.Equal(t, CreateDefaultConfiguration(), cfg)
}

func TestBuilder_ScalarOverrides(t *testing.T) {
	override := &Config{
		Module:    stringPtr("test_module"),
		Attribute: stringPtr("VERSION"),
		Commit:    boolPtr(true),
		Tag:       boolPtr(true),
		DryRun:    boolPtr(true),
		Files:     strSlicePtr([]string{"anyfile.py"}),
		Bump: &StepConfig{
			Suffix:  stringPtr("final"),
			Message: stringPtr("Version {version}"),
		},
		Prepare: &StepConfig{
			Part:    partPtr(version.PartMinor),
			Suffix:  stringPtr("dev"),
			Message: stringPtr("Update to version {version}"),
		},
	}

	cfg := NewBuilder(hooks.Default()).Add(override).Build()

	require.Equal(t, "test_module", *cfg.Module)
	require.Equal(t, "VERSION", *cfg.Attribute)
	require.True(t, *cfg.DryRun)
	require.Equal(t, []string{"anyfile.py"}, *cfg.Files)

	// Overridden nested keys applied, defaults kept for the rest.
	require.Equal(t, "final", *cfg.Bump.Suffix)
	require.Equal(t, "Version {version}", *cfg.Bump.Message)
	require.Equal(t, version.PartPatch, *cfg.Bump.Part)
	require.True(t, *cfg.Bump.Unsuffix)

	require.Equal(t, version.PartMinor, *cfg.Prepare.Part)
	require.Equal(t, "dev", *cfg.Prepare.Suffix)

	// Untouched top-level defaults survive.
	require.Equal(t, "", *cfg.File)
	require.False(t, *cfg.Push)
}

func TestBuilder_HookEnabledWithDefaults(t *testing.T) {
	registry := hooks.Default()
	override := &Config{
		Hooks: map[string]hooks.Settings{
			"readthedoc": {"id": "demo"},
		},
	}

	cfg := NewBuilder(registry).Add(override).Build()

	require.True(t, cfg.HookEnabled("readthedoc"))
	settings, ok := cfg.HookSettings("readthedoc")
	require.True(t, ok)

	// The user's value is merged over the hook's own defaults.
	require.Equal(t, "demo", settings.Get("id"))
	require.Equal(t, "https://{id}.readthedocs.io/en/{tag}", settings.Get("url"))
	require.Equal(t, "latest", settings.Get("prepare"))

	// Every other hook stays disabled.
	for _, key := range registry.Keys() {
		if key != "readthedoc" {
			require.False(t, cfg.HookEnabled(key), key)
		}
	}
}

func TestBuilder_HookLayersMergePerKey(t *testing.T) {
	registry := hooks.Default()

	fileLayer := &Config{
		Hooks: map[string]hooks.Settings{
			"changelog": {"file": "CHANGELOG.rst", "separator": "-"},
		},
	}
	argsLayer := &Config{
		Hooks: map[string]hooks.Settings{
			"changelog": {"separator": "~"},
		},
	}

	cfg := NewBuilder(registry).Add(fileLayer).Add(argsLayer).Build()

	settings, _ := cfg.HookSettings("changelog")
	require.Equal(t, "CHANGELOG.rst", settings.Get("file"))
	require.Equal(t, "~", settings.Get("separator"))
	// Hook defaults still underneath.
	require.Equal(t, "Nothing yet", settings.Get("empty"))
}

func TestBuilder_LaterLayersWinPerField(t *testing.T) {
	first := &Config{Push: boolPtr(true), File: stringPtr("one.py")}
	second := &Config{Push: boolPtr(false)}

	cfg := NewBuilder(hooks.Default()).Add(first).Add(second).Build()

	require.False(t, *cfg.Push)
	// Field absent from the later layer falls through to the earlier
	// layer, not to the default.
	require.Equal(t, "one.py", *cfg.File)
}
