// Package files locates version strings inside project files and
// rewrites them in place, leaving every other byte untouched.
package files

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/bumpr-dev/bumpr/internal/version"
)

// DefaultPattern matches common version assignments such as
// `__version__ = "1.2.3"` or `VERSION = '1.2.3'`.
const DefaultPattern = `(?m)(__version__|VERSION)\s*=\s*['"](?P<version>[^'"]+)['"]`

// ExtractVersion reads path and extracts the version matched by the
// pattern's "version" capture group. An empty pattern selects
// DefaultPattern.
func ExtractVersion(path, pattern string) (version.Version, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return version.Version{}, fmt.Errorf("invalid version pattern %q: %w", pattern, err)
	}

	idx := re.SubexpIndex("version")
	if idx < 0 {
		return version.Version{}, fmt.Errorf("version pattern %q has no \"version\" capture group", pattern)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return version.Version{}, fmt.Errorf("reading %s: %w", path, err)
	}

	matches := re.FindStringSubmatch(string(data))
	if matches == nil {
		return version.Version{}, fmt.Errorf("no version found in %s", path)
	}

	return version.Parse(matches[idx])
}

// ExtractAttribute extracts the version assigned to a named attribute
// inside a module file, e.g. attribute "VERSION" in "mypkg/release.py".
func ExtractAttribute(path, attribute string) (version.Version, error) {
	pattern := `(?m)` + regexp.QuoteMeta(attribute) + `\s*=\s*['"](?P<version>[^'"]+)['"]`
	return ExtractVersion(path, pattern)
}

// Substitution is a single old→new text replacement.
type Substitution struct {
	Old string
	New string
}

// Rewriter applies substitutions to files on disk. With DryRun set it
// reports what would change without writing anything.
type Rewriter struct {
	DryRun bool
	Log    *slog.Logger
}

func (rw *Rewriter) logger() *slog.Logger {
	if rw.Log != nil {
		return rw.Log
	}
	return slog.Default()
}

// Replace applies all substitutions to the file at path. Returns true
// when the content changed (or would have changed under DryRun). File
// permissions are preserved.
func (rw *Rewriter) Replace(path string, subs []Substitution) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	before := string(data)
	after := before
	for _, sub := range subs {
		if sub.Old == "" || sub.Old == sub.New {
			continue
		}
		after = strings.ReplaceAll(after, sub.Old, sub.New)
	}

	if after == before {
		return false, nil
	}

	if rw.DryRun {
		rw.logger().Info("dryrun", "rewrite", path)
		return true, nil
	}

	if err := os.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// Preview returns the file content before and after the substitutions
// without touching the file.
func Preview(path string, subs []Substitution) (before, after string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	before = string(data)
	after = before
	for _, sub := range subs {
		if sub.Old == "" || sub.Old == sub.New {
			continue
		}
		after = strings.ReplaceAll(after, sub.Old, sub.New)
	}
	return before, after, nil
}

// ReplaceInFile is a single-substitution convenience for hook code.
func (rw *Rewriter) ReplaceInFile(path, old, new string) error {
	_, err := rw.Replace(path, []Substitution{{Old: old, New: new}})
	return err
}
