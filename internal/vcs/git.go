package vcs

import (
	"context"
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that Git implements VCS.
var _ VCS = (*Git)(nil)

// Git implements VCS using go-git.
type Git struct {
	Dir string

	repo *gogit.Repository
}

func (g *Git) open() (*gogit.Repository, error) {
	if g.repo != nil {
		return g.repo, nil
	}
	repo, err := gogit.PlainOpenWithOptions(g.Dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", g.Dir, err)
	}
	g.repo = repo
	return repo, nil
}

func (g *Git) Validate(_ context.Context) error {
	_, err := g.open()
	return err
}

func (g *Git) Commit(_ context.Context, message string) error {
	repo, err := g.open()
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	_, err = wt.Commit(message, &gogit.CommitOptions{
		All:    true,
		Author: g.signature(repo),
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func (g *Git) Tag(_ context.Context, name, annotation string) error {
	repo, err := g.open()
	if err != nil {
		return err
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	var opts *gogit.CreateTagOptions
	if annotation != "" {
		opts = &gogit.CreateTagOptions{
			Message: annotation,
			Tagger:  g.signature(repo),
		}
	}

	if _, err := repo.CreateTag(name, head.Hash(), opts); err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}
	return nil
}

func (g *Git) Push(_ context.Context) error {
	repo, err := g.open()
	if err != nil {
		return err
	}

	if err := repo.Push(&gogit.PushOptions{RemoteName: "origin"}); err != nil &&
		!errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pushing commits: %w", err)
	}

	err = repo.Push(&gogit.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []config.RefSpec{"refs/tags/*:refs/tags/*"},
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pushing tags: %w", err)
	}
	return nil
}

// signature builds a tag/commit signature from the repository config,
// falling back to a neutral identity when none is set.
func (g *Git) signature(repo *gogit.Repository) *object.Signature {
	sig := &object.Signature{Name: "bumpr", Email: "bumpr@localhost", When: time.Now()}
	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
