package hooks

import (
	"context"
	"errors"

	"github.com/bumpr-dev/bumpr/internal/execute"
)

// ReadTheDocHook updates Read the Docs URLs and badges in the project
// files so they point at the released documentation version.
type ReadTheDocHook struct{}

func (h *ReadTheDocHook) Key() string {
	return "readthedoc"
}

func (h *ReadTheDocHook) Defaults() Settings {
	return Settings{
		"id":      "",
		"url":     "https://{id}.readthedocs.io/en/{tag}",
		"badge":   "https://readthedocs.org/projects/{id}/badge/?version={tag}",
		"bump":    "{version}",
		"prepare": "latest",
	}
}

func (h *ReadTheDocHook) Validate(s Settings) error {
	if s.Get("id") == "" {
		return errors.New("readthedoc hook requires a project id")
	}
	return nil
}

func (h *ReadTheDocHook) url(s Settings, tag string) string {
	return execute.Expand(s.Get("url"), map[string]string{"id": s.Get("id"), "tag": tag})
}

func (h *ReadTheDocHook) badge(s Settings, tag string) string {
	return execute.Expand(s.Get("badge"), map[string]string{"id": s.Get("id"), "tag": tag})
}

func (h *ReadTheDocHook) Bump(_ context.Context, inv *Invocation) error {
	tag := inv.expand(inv.Settings.Get("bump"))
	latest := inv.Settings.Get("prepare")
	inv.AddSubstitution(h.url(inv.Settings, latest), h.url(inv.Settings, tag))
	inv.AddSubstitution(h.badge(inv.Settings, latest), h.badge(inv.Settings, tag))
	return nil
}

func (h *ReadTheDocHook) Prepare(_ context.Context, inv *Invocation) error {
	tag := inv.expandPrevious(inv.Settings.Get("bump"))
	next := inv.Settings.Get("prepare")
	inv.AddSubstitution(h.url(inv.Settings, tag), h.url(inv.Settings, next))
	inv.AddSubstitution(h.badge(inv.Settings, tag), h.badge(inv.Settings, next))
	return nil
}
