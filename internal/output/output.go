// Package output renders the resolved configuration and dry-run file
// previews for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"github.com/bumpr-dev/bumpr/internal/config"
	"github.com/bumpr-dev/bumpr/internal/hooks"
)

// WriteConfig writes the resolved configuration as YAML to the writer.
// Every hook known to the registry appears under hooks, with disabled
// hooks rendered as an explicit false.
func WriteConfig(w io.Writer, cfg *config.Config, registry *hooks.Registry) error {
	view := *cfg
	view.Hooks = nil
	data, err := yaml.Marshal(&view)
	if err != nil {
		return fmt.Errorf("marshaling configuration to YAML: %w", err)
	}

	hookView := make(map[string]any, len(registry.Keys()))
	for _, key := range registry.Keys() {
		if settings, ok := cfg.HookSettings(key); ok {
			hookView[key] = settings
		} else {
			hookView[key] = false
		}
	}
	hookData, err := yaml.Marshal(struct {
		Hooks map[string]any `yaml:"hooks"`
	}{hookView})
	if err != nil {
		return fmt.Errorf("marshaling hook configuration to YAML: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write(hookData)
	return err
}

// WriteDiff writes a line diff between the current and planned content
// of a file. Unchanged lines are prefixed with two spaces, removals
// with "- " and additions with "+ ".
func WriteDiff(w io.Writer, path, before, after string) error {
	if before == after {
		return nil
	}
	if _, err := fmt.Fprintf(w, "--- %s\n", path); err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)

	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitLines(d.Text) {
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
