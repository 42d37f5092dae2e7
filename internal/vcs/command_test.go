package vcs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bumpr-dev/bumpr/internal/execute"
)

// shCommands drives a plain shell so the engine can be exercised
// without mercurial or bazaar installed.
func shCommands(dir string) commandSet {
	marker := filepath.Join(dir, "ops.log")
	return commandSet{
		validate: []string{"true"},
		commit:   []string{"sh", "-c", "echo commit {message} >> " + marker},
		tag:      []string{"sh", "-c", "echo tag {tag} >> " + marker},
		tagNote:  []string{"sh", "-c", "echo tag {tag} {annotation} >> " + marker},
		push:     []string{"sh", "-c", "echo push >> " + marker},
	}
}

func TestCommandVCS_RunsConfiguredCommands(t *testing.T) {
	dir := t.TempDir()
	engine := NewCommandVCS(dir, shCommands(dir))
	ctx := context.Background()

	require.NoError(t, engine.Validate(ctx))
	require.NoError(t, engine.Commit(ctx, "Bump version 1.2.3"))
	require.NoError(t, engine.Tag(ctx, "1.2.3", ""))
	require.NoError(t, engine.Tag(ctx, "1.2.4", "Version 1.2.4"))
	require.NoError(t, engine.Push(ctx))

	data, err := os.ReadFile(filepath.Join(dir, "ops.log"))
	require.NoError(t, err)
	require.Equal(t, "commit Bump version 1.2.3\ntag 1.2.3\ntag 1.2.4 Version 1.2.4\npush\n", string(data))
}

func TestCommandVCS_CommandFailure(t *testing.T) {
	engine := NewCommandVCS(t.TempDir(), commandSet{
		validate: []string{"false"},
	})

	err := engine.Validate(context.Background())
	var execErr *execute.Error
	require.ErrorAs(t, err, &execErr)
}
