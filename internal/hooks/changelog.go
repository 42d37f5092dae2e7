package hooks

import (
	"context"
	"errors"
	"strings"
)

// ChangelogHook rewrites the development section header of a changelog
// file on bump, and reopens a fresh development section on prepare.
type ChangelogHook struct{}

func (h *ChangelogHook) Key() string {
	return "changelog"
}

func (h *ChangelogHook) Defaults() Settings {
	return Settings{
		"file":      "",
		"separator": "=",
		"bump":      "{version} ({date})",
		"prepare":   "In development",
		"empty":     "Nothing yet",
	}
}

func (h *ChangelogHook) Validate(s Settings) error {
	if s.Get("file") == "" {
		return errors.New("changelog hook requires a file")
	}
	return nil
}

// underline renders a section title with its separator line, the way
// reStructuredText-style changelogs mark sections.
func (h *ChangelogHook) underline(s Settings, title string) string {
	sep := s.Get("separator")
	if sep == "" {
		return title
	}
	return title + "\n" + strings.Repeat(sep, len(title))
}

func (h *ChangelogHook) Bump(_ context.Context, inv *Invocation) error {
	devHeader := h.underline(inv.Settings, inv.Settings.Get("prepare"))
	bumpHeader := h.underline(inv.Settings, inv.expand(inv.Settings.Get("bump")))
	return inv.Rewriter.ReplaceInFile(inv.path(inv.Settings.Get("file")), devHeader, bumpHeader)
}

func (h *ChangelogHook) Prepare(_ context.Context, inv *Invocation) error {
	bumpHeader := h.underline(inv.Settings, inv.expandPrevious(inv.Settings.Get("bump")))
	devSection := h.underline(inv.Settings, inv.Settings.Get("prepare")) +
		"\n\n" + inv.Settings.Get("empty") + "\n\n" + bumpHeader
	return inv.Rewriter.ReplaceInFile(inv.path(inv.Settings.Get("file")), bumpHeader, devSection)
}
