// Package testutil provides helpers for creating temporary project
// repositories with version-bearing files for end-to-end testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Project is a builder for temporary git-backed projects with a
// controlled set of files and commits.
type Project struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
}

// NewProject creates and initializes a git repository in a temporary
// directory.
func NewProject(t testing.TB) *Project {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &Project{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the project root directory.
func (p *Project) Path() string {
	return p.path
}

// Repo returns the underlying repository.
func (p *Project) Repo() *gogit.Repository {
	return p.repo
}

// WriteFile writes a file relative to the project root and returns
// its absolute path.
func (p *Project) WriteFile(name, content string) string {
	p.t.Helper()
	path := filepath.Join(p.path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		p.t.Fatalf("creating directories for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		p.t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// ReadFile reads a file relative to the project root.
func (p *Project) ReadFile(name string) string {
	p.t.Helper()
	data, err := os.ReadFile(filepath.Join(p.path, name))
	if err != nil {
		p.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// Commit stages everything and commits with the given message.
// Returns the commit SHA.
func (p *Project) Commit(message string) string {
	p.t.Helper()
	p.time = p.time.Add(time.Minute)

	wt, err := p.repo.Worktree()
	if err != nil {
		p.t.Fatalf("getting worktree: %v", err)
	}

	if err := wt.AddGlob("."); err != nil {
		p.t.Fatalf("staging files: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  p.time,
		},
	})
	if err != nil {
		p.t.Fatalf("committing: %v", err)
	}
	return hash.String()
}

// AddBareRemote creates a bare sibling repository and registers it as
// origin, so push operations have somewhere to go.
func (p *Project) AddBareRemote() string {
	p.t.Helper()
	dir := p.t.TempDir()

	if _, err := gogit.PlainInit(dir, true); err != nil {
		p.t.Fatalf("failed to init bare repo: %v", err)
	}

	_, err := p.repo.CreateRemote(&gogitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{dir},
	})
	if err != nil {
		p.t.Fatalf("creating remote: %v", err)
	}
	return dir
}
