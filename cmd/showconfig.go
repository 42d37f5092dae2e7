package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/output"
)

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Print the resolved configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := hooks.Default()
		cfg, err := resolveConfig(cmd, args, registry)
		if err != nil {
			return err
		}
		return output.WriteConfig(cmd.OutOrStdout(), cfg, registry)
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
