// Package vcs provides the version-control operations bumpr performs
// around a release: committing the rewritten files, tagging the new
// version, and pushing.
package vcs

import (
	"context"
	"fmt"
)

// VCS abstracts a version-control engine.
// This is the key abstraction point for testing and backend swapping.
type VCS interface {
	// Validate checks that the working directory is a usable
	// repository for a release.
	Validate(ctx context.Context) error

	// Commit records all pending changes with the given message.
	Commit(ctx context.Context, message string) error

	// Tag creates a tag with an optional annotation message.
	Tag(ctx context.Context, name, annotation string) error

	// Push publishes commits and tags to the default remote.
	Push(ctx context.Context) error
}

// New returns the engine selected by name. The dryrun flag wraps the
// engine so no operation touches the repository.
func New(engine, dir string, dryrun bool) (VCS, error) {
	var impl VCS
	switch engine {
	case "git":
		impl = &Git{Dir: dir}
	case "hg":
		impl = NewCommandVCS(dir, mercurialCommands)
	case "bzr":
		impl = NewCommandVCS(dir, bazaarCommands)
	default:
		return nil, fmt.Errorf("unknown vcs engine %q", engine)
	}

	if dryrun {
		return &DryRun{Wrapped: impl}, nil
	}
	return impl, nil
}
