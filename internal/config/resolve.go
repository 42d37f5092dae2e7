package config

import (
	"os"
	"path/filepath"

	"github.com/bumpr-dev/bumpr/internal/hooks"
)

// rcFileNames lists the rc files discovered in the working directory,
// in search order.
var rcFileNames = []string{"bumpr.rc", ".bumpr.rc"}

// Options controls configuration resolution.
type Options struct {
	// Dir is the directory searched for config files. Defaults to ".".
	Dir string

	// RCFile is an explicit rc file path. When empty the rc file is
	// discovered in Dir. A missing file contributes no overrides.
	RCFile string

	// Args is the command-line override layer, already reduced to
	// explicitly-supplied values only.
	Args *Config
}

// Resolve assembles the configuration from all layers: defaults, then
// setup.cfg, then pyproject.toml, then the rc file, then command-line
// overrides. Each missing source simply contributes nothing.
func Resolve(registry *hooks.Registry, opts Options) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	b := NewBuilder(registry)

	if path := filepath.Join(dir, "setup.cfg"); fileExists(path) {
		layer, err := LoadSetupCfg(path, registry)
		if err != nil {
			return nil, err
		}
		b.Add(layer)
	}

	if path := filepath.Join(dir, "pyproject.toml"); fileExists(path) {
		layer, err := LoadPyproject(path, registry)
		if err != nil {
			return nil, err
		}
		b.Add(layer)
	}

	rcPath := opts.RCFile
	if rcPath == "" {
		for _, name := range rcFileNames {
			if path := filepath.Join(dir, name); fileExists(path) {
				rcPath = path
				break
			}
		}
	}
	if rcPath != "" && fileExists(rcPath) {
		layer, err := LoadRC(rcPath, registry)
		if err != nil {
			return nil, err
		}
		b.Add(layer)
	}

	b.Add(opts.Args)

	return b.Build(), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
