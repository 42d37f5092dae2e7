package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.Flags()

	require.NotNil(t, flags.Lookup("major"))
	require.NotNil(t, flags.Lookup("minor"))
	require.NotNil(t, flags.Lookup("patch"))
	require.NotNil(t, flags.Lookup("suffix"))

	for _, pair := range boolPairs {
		require.NotNil(t, flags.Lookup(pair.name))
		require.NotNil(t, flags.Lookup(pair.inverse))
	}

	pf := rootCmd.PersistentFlags()
	require.NotNil(t, pf.Lookup("config"))
	require.NotNil(t, pf.Lookup("dir"))
	require.NotNil(t, pf.Lookup("verbose"))
	require.NotNil(t, pf.Lookup("dryrun"))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	require.True(t, names["version"], "version subcommand should be registered")
	require.True(t, names["show-config"], "show-config subcommand should be registered")
}
