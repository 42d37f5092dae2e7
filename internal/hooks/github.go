package hooks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// Compile-time check that the hook participates in the publish phase.
var _ Publisher = (*GitHubHook)(nil)

// GitHubHook publishes a GitHub release for the freshly tagged version.
type GitHubHook struct {
	// createRelease is swappable for tests; the default dials the API.
	createRelease func(ctx context.Context, owner, repo string, rel *gh.RepositoryRelease) error
}

func (h *GitHubHook) Key() string {
	return "github"
}

func (h *GitHubHook) Defaults() Settings {
	return Settings{
		"repository": "",
		"token":      "",
		"base_url":   "",
		"tag_format": "{version}",
		"title":      "Release {version}",
		"body":       "",
		"draft":      "false",
		"prerelease": "auto",
	}
}

func (h *GitHubHook) Validate(s Settings) error {
	repo := s.Get("repository")
	if repo == "" {
		return errors.New("github hook requires a repository")
	}
	if !strings.Contains(repo, "/") {
		return fmt.Errorf("github repository %q must be owner/name", repo)
	}
	return nil
}

// Bump is a no-op: the release is created in the publish phase, after
// the tag has been pushed.
func (h *GitHubHook) Bump(context.Context, *Invocation) error {
	return nil
}

// Publish creates the GitHub release for the freshly pushed tag.
func (h *GitHubHook) Publish(ctx context.Context, inv *Invocation) error {
	owner, repo, ok := strings.Cut(inv.Settings.Get("repository"), "/")
	if !ok {
		return fmt.Errorf("github repository %q must be owner/name", inv.Settings.Get("repository"))
	}

	tag := inv.expand(inv.Settings.Get("tag_format"))
	title := inv.expand(inv.Settings.Get("title"))
	body := inv.expand(inv.Settings.Get("body"))
	draft := inv.Settings.GetBool("draft")

	prerelease := false
	switch inv.Settings.Get("prerelease") {
	case "auto", "":
		prerelease = !inv.Version.IsFinal()
	case "true":
		prerelease = true
	}

	if inv.DryRun {
		inv.logger().Info("dryrun", "github release", tag, "repository", inv.Settings.Get("repository"))
		return nil
	}

	release := &gh.RepositoryRelease{
		TagName:    gh.Ptr(tag),
		Name:       gh.Ptr(title),
		Body:       gh.Ptr(body),
		Draft:      gh.Ptr(draft),
		Prerelease: gh.Ptr(prerelease),
	}

	create := h.createRelease
	if create == nil {
		client, err := NewGitHubClient(ClientConfig{
			Token:   inv.Settings.Get("token"),
			BaseURL: inv.Settings.Get("base_url"),
			Owner:   owner,
		})
		if err != nil {
			return err
		}
		create = func(ctx context.Context, owner, repo string, rel *gh.RepositoryRelease) error {
			_, _, err := client.Repositories.CreateRelease(ctx, owner, repo, rel)
			return err
		}
	}

	if err := create(ctx, owner, repo, release); err != nil {
		return fmt.Errorf("creating GitHub release %s: %w", tag, err)
	}
	inv.logger().Info("created GitHub release", "tag", tag, "repository", inv.Settings.Get("repository"))
	return nil
}

// Prepare is a no-op: development versions are not published.
func (h *GitHubHook) Prepare(context.Context, *Invocation) error {
	return nil
}
