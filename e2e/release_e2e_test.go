// Package e2e contains end-to-end tests that exercise the full
// release pipeline against real (temporary) git repositories.
//
// Each test creates a purpose-built project, runs a release through
// the public library API, and asserts on the resulting files, commits
// and tags. This tests all layers together: config resolution →
// version extraction → hooks → file rewriting → version control.
package e2e

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"

	"github.com/bumpr-dev/bumpr/internal/testutil"
	"github.com/bumpr-dev/bumpr/pkg/bumpr"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func release(t *testing.T, project *testutil.Project, opts bumpr.Options) *bumpr.Result {
	t.Helper()
	opts.Dir = project.Path()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	result, err := bumpr.Release(context.Background(), opts)
	require.NoError(t, err)
	return result
}

func TestE2E_BasicRelease(t *testing.T) {
	project := testutil.NewProject(t)
	project.WriteFile("fake.py", "__version__ = '1.2.2'\n")
	project.WriteFile("bumpr.rc", `[bumpr]
file = fake.py
`)
	project.Commit("initial")

	result := release(t, project, bumpr.Options{})

	require.Equal(t, "1.2.2", result.Previous)
	require.Equal(t, "1.2.3", result.Released)
	require.Equal(t, "__version__ = '1.2.3'\n", project.ReadFile("fake.py"))

	_, err := project.Repo().Tag("1.2.3")
	require.NoError(t, err)
}

func TestE2E_LayerPrecedence(t *testing.T) {
	project := testutil.NewProject(t)
	project.WriteFile("fake.py", "__version__ = '1.2.2'\n")
	project.WriteFile("setup.cfg", `[bumpr]
file = fake.py
tag = false

[bumpr:bump]
part = patch
`)
	project.WriteFile("pyproject.toml", `[tool.bumpr.bump]
part = "minor"
`)
	project.WriteFile("bumpr.rc", `[bump]
part = major
`)
	project.Commit("initial")

	// The rc file wins the bump part; tag = false from setup.cfg
	// falls through untouched.
	result := release(t, project, bumpr.Options{})

	require.Equal(t, "2.0.0", result.Released)
	_, err := project.Repo().Tag("2.0.0")
	require.Error(t, err)
}

func TestE2E_FullDevelopmentCycle(t *testing.T) {
	project := testutil.NewProject(t)
	project.WriteFile("fake.py", "__version__ = '0.4.0-dev'\n")
	project.WriteFile("CHANGELOG.rst", `Changelog
#########

In development
==============

- New storage backend

0.3.0 (2025-12-01)
==================

- Initial release
`)
	project.WriteFile("bumpr.rc", `[bumpr]
file = fake.py

[bump]
unsuffix = true

[prepare]
part = minor
suffix = dev

[changelog]
file = CHANGELOG.rst
`)
	project.Commit("initial")

	result := release(t, project, bumpr.Options{})

	require.Equal(t, "0.4.0-dev", result.Previous)
	require.Equal(t, "0.4.1", result.Released)
	require.Equal(t, "0.5.0-dev", result.Next)
	require.Equal(t, "__version__ = '0.5.0-dev'\n", project.ReadFile("fake.py"))

	changelog := project.ReadFile("CHANGELOG.rst")
	require.Contains(t, changelog, "In development\n==============\n\nNothing yet")
	require.Contains(t, changelog, "0.4.1 (")
	require.Contains(t, changelog, "- New storage backend")
	require.Contains(t, changelog, "0.3.0 (2025-12-01)")
}

func TestE2E_ReplaceHookRewritesReadme(t *testing.T) {
	project := testutil.NewProject(t)
	project.WriteFile("fake.py", "__version__ = '1.0.0'\n")
	project.WriteFile("README.rst", "pip install fake==dev\n")
	project.WriteFile("bumpr.rc", `[bumpr]
file = fake.py
files = README.rst

[prepare]
part = patch
suffix = dev

[replace]
dev = fake==dev
stable = fake=={version}
`)
	project.Commit("initial")

	result := release(t, project, bumpr.Options{Part: "minor"})

	require.Equal(t, "1.1.0", result.Released)
	// The prepare phase swaps the stable marker back to dev.
	require.Equal(t, "pip install fake==dev\n", project.ReadFile("README.rst"))
	require.Equal(t, "__version__ = '1.1.1-dev'\n", project.ReadFile("fake.py"))
}

func TestE2E_GitHubRelease(t *testing.T) {
	var created *gh.RepositoryRelease
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/fake/fake/releases", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var rel gh.RepositoryRelease
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rel))
		created = &rel
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(&rel))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	project := testutil.NewProject(t)
	project.WriteFile("fake.py", "__version__ = '1.2.2'\n")
	project.WriteFile("bumpr.rc", `[bumpr]
file = fake.py

[github]
repository = fake/fake
token = test-token
base_url = `+server.URL+`
`)
	project.Commit("initial")

	result := release(t, project, bumpr.Options{})

	require.Equal(t, "1.2.3", result.Released)
	require.NotNil(t, created, "a release should have been created")
	require.Equal(t, "1.2.3", created.GetTagName())
	require.Equal(t, "Release 1.2.3", created.GetName())
	require.False(t, created.GetPrerelease())
}

func TestE2E_DryRunTouchesNothing(t *testing.T) {
	project := testutil.NewProject(t)
	project.WriteFile("fake.py", "__version__ = '1.2.2'\n")
	project.WriteFile("bumpr.rc", `[bumpr]
file = fake.py
`)
	project.Commit("initial")

	head, err := project.Repo().Head()
	require.NoError(t, err)

	result := release(t, project, bumpr.Options{DryRun: true})

	require.Equal(t, "1.2.3", result.Released)
	require.Equal(t, "__version__ = '1.2.2'\n", project.ReadFile("fake.py"))

	after, err := project.Repo().Head()
	require.NoError(t, err)
	require.Equal(t, head.Hash(), after.Hash())
	_, err = project.Repo().Tag("1.2.3")
	require.Error(t, err)
}
