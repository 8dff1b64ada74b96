package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/whimsy/internal/config"
)

var (
	flagWrite    string
	flagDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the effective configuration",
	Long: `Print the configuration whimsy would run with, after flag overrides.
With --write the configuration is saved to a file instead.

Examples:
  whimsy config
  whimsy config --defaults
  whimsy config --write ~/.whimsy/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagWrite, "write", "", "Write the configuration to this path")
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default config file")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagDefaults {
		fmt.Fprint(out, string(config.DefaultYAML()))
		return nil
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if flagWrite != "" {
		path, err := config.ExpandHome(flagWrite)
		if err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Configuration written to %s\n", path)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}
