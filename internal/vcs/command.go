package vcs

import (
	"context"

	"github.com/bumpr-dev/bumpr/internal/execute"
)

// commandSet maps VCS operations to the command lines of a
// shell-driven engine. Messages and tag names are injected through
// the usual {placeholder} expansion.
type commandSet struct {
	validate []string
	commit   []string
	tag      []string
	tagNote  []string
	push     []string
}

var mercurialCommands = commandSet{
	validate: []string{"hg", "root"},
	commit:   []string{"hg", "commit", "-A", "-m", "{message}"},
	tag:      []string{"hg", "tag", "{tag}"},
	tagNote:  []string{"hg", "tag", "-m", "{annotation}", "{tag}"},
	push:     []string{"hg", "push"},
}

var bazaarCommands = commandSet{
	validate: []string{"bzr", "root"},
	commit:   []string{"bzr", "commit", "-m", "{message}"},
	tag:      []string{"bzr", "tag", "{tag}"},
	tagNote:  []string{"bzr", "tag", "{tag}"},
	push:     []string{"bzr", "push"},
}

// Compile-time check that CommandVCS implements VCS.
var _ VCS = (*CommandVCS)(nil)

// CommandVCS drives a version-control engine through its command-line
// interface.
type CommandVCS struct {
	commands commandSet
	runner   *execute.Runner
}

// NewCommandVCS creates a command-driven engine rooted at dir.
func NewCommandVCS(dir string, commands commandSet) *CommandVCS {
	return &CommandVCS{
		commands: commands,
		runner:   &execute.Runner{Dir: dir},
	}
}

func (c *CommandVCS) Validate(ctx context.Context) error {
	_, err := c.runner.RunArgs(ctx, c.commands.validate, nil)
	return err
}

func (c *CommandVCS) Commit(ctx context.Context, message string) error {
	_, err := c.runner.RunArgs(ctx, c.commands.commit, map[string]string{"message": message})
	return err
}

func (c *CommandVCS) Tag(ctx context.Context, name, annotation string) error {
	argv := c.commands.tag
	repl := map[string]string{"tag": name}
	if annotation != "" && c.commands.tagNote != nil {
		argv = c.commands.tagNote
		repl["annotation"] = annotation
	}
	_, err := c.runner.RunArgs(ctx, argv, repl)
	return err
}

func (c *CommandVCS) Push(ctx context.Context) error {
	_, err := c.runner.RunArgs(ctx, c.commands.push, nil)
	return err
}
