package hooks

import "context"

// CommandsHook runs user-supplied shell commands around the release,
// with {version}-style replacements expanded.
type CommandsHook struct{}

func (h *CommandsHook) Key() string {
	return "commands"
}

func (h *CommandsHook) Defaults() Settings {
	return Settings{
		"bump":    "",
		"prepare": "",
	}
}

func (h *CommandsHook) Validate(Settings) error {
	return nil
}

func (h *CommandsHook) Bump(ctx context.Context, inv *Invocation) error {
	_, err := inv.Runner.Run(ctx, inv.Settings.Get("bump"), inv.Replacements)
	return err
}

func (h *CommandsHook) Prepare(ctx context.Context, inv *Invocation) error {
	_, err := inv.Runner.Run(ctx, inv.Settings.Get("prepare"), inv.Replacements)
	return err
}
