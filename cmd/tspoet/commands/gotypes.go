package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/tspoet/generate"
)

var (
	gotypesDir   string
	gotypesCheck bool
)

// GotypesCmd generates declarations from Go packages
var GotypesCmd = &cobra.Command{
	Use:   "gotypes <package>...",
	Short: "Generate TypeScript declarations from Go packages",
	Long: `Generate TypeScript declarations from Go structs and types.

Each package becomes one module named after the package, plus an index
module re-exporting every type. It handles:
  - Struct types → interfaces (embedded structs → extends)
  - String types with a const block → unions of string literals
  - JSON tags for property naming, omitempty and pointers as optional
  - tstype tags to override a property type
  - time.Time as string, []byte as string, maps as Record<K, V>
  - References across generated packages → imports

Examples:
  tspoet gotypes ./api/...                   # Print to stdout
  tspoet gotypes ./api ./store -o web/types  # Write modules and index.ts
  tspoet gotypes ./api -o web/types --check  # Exit 1 when web/types is stale`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGotypes,
}

func init() {
	GotypesCmd.Flags().StringVar(&gotypesDir, "dir", ".", "Directory package patterns are resolved from")
	GotypesCmd.Flags().BoolVar(&gotypesCheck, "check", false, "Compare with the output directory instead of writing")
}

func runGotypes(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	reportConfig(cfg)

	var spinner *pterm.SpinnerPrinter
	if cfg.Output.Dir != "" {
		spinner, _ = pterm.DefaultSpinner.Start("Loading Go packages...")
	}
	outputs, err := generate.RenderPackages(cmd.Context(), cfg, gotypesDir, args)
	if spinner != nil {
		if err != nil {
			spinner.Fail("Failed to load Go packages")
		} else {
			spinner.Success("Loaded Go packages")
		}
	}
	if err != nil {
		return err
	}

	if gotypesCheck {
		return reportCheck(generate.Check(cfg, outputs))
	}

	written, err := generate.Write(cfg, outputs, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	reportOutputs(cfg, outputs, written)
	if cfg.Output.Dir != "" {
		pterm.Success.Printfln("Generated %d module(s), %d file(s) changed", len(outputs), len(written))
	}
	return nil
}
