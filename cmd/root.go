package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagConfig  string
	flagDir     string
	flagVerbose bool
	flagDryRun  bool

	flagMajor  bool
	flagMinor  bool
	flagPatch  bool
	flagSuffix string
)

// boolPairs lists the paired enable/disable flags. Each pair maps to
// one tri-state configuration field: supplying neither form leaves
// the file-layer value untouched.
var boolPairs = []struct {
	name, inverse, usage string
}{
	{"commit", "no-commit", "commit the version changes"},
	{"push", "no-push", "push commits and tags to the remote"},
	{"skip-tests", "no-skip-tests", "skip the test suite before releasing"},
	{"bump-only", "no-bump-only", "only perform the version bump"},
	{"prepare-only", "no-prepare-only", "only prepare the next development version"},
}

// rootCmd is the top-level command for bumpr.
var rootCmd = &cobra.Command{
	Use:   "bumpr [file]",
	Short: "Version bumper and releaser",
	Long:  "bumpr bumps the version string in your project files, runs the configured hooks, commits, tags, and prepares the next development cycle.",
	Args:  cobra.MaximumNArgs(1),
	// Default action is release.
	RunE: releaseRunE,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&flagMajor, "major", "M", false, "bump the major version")
	flags.BoolVarP(&flagMinor, "minor", "m", false, "bump the minor version")
	flags.BoolVarP(&flagPatch, "patch", "p", false, "bump the patch version")
	flags.StringVarP(&flagSuffix, "suffix", "s", "", "suffix to append to the bumped version")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "path to the rc file (default: auto-detect)")
	pf.StringVarP(&flagDir, "dir", "d", ".", "project directory")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	pf.BoolVarP(&flagDryRun, "dryrun", "n", false, "show what would change without touching anything")

	for _, pair := range boolPairs {
		flags.Bool(pair.name, false, pair.usage)
		flags.Bool(pair.inverse, false, "do not "+pair.usage)
		rootCmd.MarkFlagsMutuallyExclusive(pair.name, pair.inverse)
	}
	rootCmd.MarkFlagsMutuallyExclusive("major", "minor", "patch")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
