package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/tspoet/am"
)

var (
	configPath string
	outputDir  string
)

// AddGlobalFlags registers the flags every command understands
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: tspoet.toml found upward from the working directory)")
	cmd.PersistentFlags().StringVarP(&outputDir, "out", "o", "", "Output directory (overrides output.dir, empty prints to stdout)")
	cmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
}

// LoadConfig loads the configuration and applies command line overrides.
// Flags rank above every other source.
func LoadConfig(cmd *cobra.Command) (*am.Config, error) {
	cfg, err := am.LoadFrom(configPath)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		cfg.Output.Dir = outputDir
	}
	if verbosity, err := cmd.Flags().GetCount("verbose"); err == nil && verbosity > 0 {
		cfg.Log.Verbosity = verbosity
	}
	return cfg, nil
}
