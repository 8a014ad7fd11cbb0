package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/tspoet/cmd/tspoet/commands"
	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tspoet",
	Short: "tspoet - TypeScript source generator",
	Long: `tspoet - Generate TypeScript source files.

Declarations are described in YAML, TOML or JSON manifests, or read from Go
packages, and rendered with consistent indentation, line wrapping and a
reduced import block.

Available commands:
  render  - Render manifests to TypeScript files
  check   - Verify generated files are up to date
  watch   - Re-render manifests when they change
  gotypes - Generate TypeScript declarations from Go packages
  am      - Manage tspoet configuration
  version - Show version information

Examples:
  tspoet render schema/ -o src/generated    # Render every manifest under schema/
  tspoet check schema/                      # Exit 1 when generated files are stale
  tspoet gotypes ./api/... -o web/types     # Types from Go structs
  tspoet am show                            # Show where each setting comes from`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A broken config is reported by the command itself so that
		// 'am init --force' can still replace it
		jsonOutput, verbosity := false, 0
		if cfg, err := commands.LoadConfig(cmd); err == nil {
			jsonOutput, verbosity = cfg.Log.JSON, cfg.Log.Verbosity
		}
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	commands.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(commands.RenderCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.GotypesCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
