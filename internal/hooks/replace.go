package hooks

import "context"

// ReplaceHook swaps a development marker for a stable one in the
// project files on bump, and back again on prepare. Both markers are
// templates rendered with the usual replacements.
type ReplaceHook struct{}

func (h *ReplaceHook) Key() string {
	return "replace"
}

func (h *ReplaceHook) Defaults() Settings {
	return Settings{
		"dev":    "",
		"stable": "",
	}
}

func (h *ReplaceHook) Validate(Settings) error {
	return nil
}

func (h *ReplaceHook) Bump(_ context.Context, inv *Invocation) error {
	dev := inv.expandPrevious(inv.Settings.Get("dev"))
	stable := inv.expand(inv.Settings.Get("stable"))
	inv.AddSubstitution(dev, stable)
	return nil
}

func (h *ReplaceHook) Prepare(_ context.Context, inv *Invocation) error {
	stable := inv.expandPrevious(inv.Settings.Get("stable"))
	dev := inv.expand(inv.Settings.Get("dev"))
	inv.AddSubstitution(stable, dev)
	return nil
}
