package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bumpr-dev/bumpr/internal/config"
	"github.com/bumpr-dev/bumpr/internal/hooks"
)

func TestWriteConfig(t *testing.T) {
	cfg := config.CreateDefaultConfiguration()
	var buf bytes.Buffer
	err := WriteConfig(&buf, cfg, hooks.Default())
	require.NoError(t, err)

	var parsed map[string]any
	err = yaml.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Equal(t, "git", parsed["vcs"])
	require.Equal(t, true, parsed["commit"])
}

func TestWriteConfig_DisabledHooksRenderedFalse(t *testing.T) {
	registry := hooks.Default()
	cfg := config.CreateDefaultConfiguration()
	cfg.Hooks["changelog"] = hooks.Settings{"file": "CHANGELOG.md"}

	var buf bytes.Buffer
	require.NoError(t, WriteConfig(&buf, cfg, registry))

	var parsed struct {
		Hooks map[string]any `yaml:"hooks"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))

	require.Len(t, parsed.Hooks, len(registry.Keys()))
	for _, key := range registry.Keys() {
		require.Contains(t, parsed.Hooks, key)
	}
	require.Equal(t, false, parsed.Hooks["github"])
	enabled, ok := parsed.Hooks["changelog"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "CHANGELOG.md", enabled["file"])
}

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDiff(&buf, "fake.py", "__version__ = '1.2.3'\nname = 'fake'\n", "__version__ = '1.3.0'\nname = 'fake'\n")
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "--- fake.py\n")
	require.Contains(t, out, "- __version__ = '1.2.3'\n")
	require.Contains(t, out, "+ __version__ = '1.3.0'\n")
	require.Contains(t, out, "  name = 'fake'\n")
}

func TestWriteDiff_NoChange(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDiff(&buf, "fake.py", "same\n", "same\n")
	require.NoError(t, err)
	require.Empty(t, buf.String())
}
