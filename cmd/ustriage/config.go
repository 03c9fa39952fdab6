package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/ustriage/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration as YAML: built-in defaults overlaid
with ~/.config/ustriage/config.yaml (or $USTRIAGE_CONFIG) and USTRIAGE_*
environment variables.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out, err := cfg.Render()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}
