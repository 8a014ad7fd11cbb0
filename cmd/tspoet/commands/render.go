package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/tspoet/generate"
	"github.com/teranos/tspoet/logger"
)

// RenderCmd renders manifests
var RenderCmd = &cobra.Command{
	Use:   "render <manifest|dir>...",
	Short: "Render manifests to TypeScript files",
	Long: `Render declaration manifests to TypeScript files.

Each argument is a manifest (.yaml, .yml, .toml or .json) or a directory
searched recursively for manifests. Files are written under output.dir,
or printed to stdout when no directory is configured. Unchanged files are
not rewritten.

Examples:
  tspoet render models.yaml                  # Print to stdout
  tspoet render schema/ -o src/generated     # Write every manifest under schema/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	reportConfig(cfg)
	start := time.Now()

	inputs, err := generate.ExpandInputs(args)
	if err != nil {
		return err
	}
	outputs, err := generate.RenderManifests(cmd.Context(), cfg, inputs)
	if err != nil {
		return err
	}

	written, err := generate.Write(cfg, outputs, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	reportOutputs(cfg, outputs, written)
	report(cfg, logger.OutputTiming, "rendered %d manifest(s) in %s", len(inputs), time.Since(start).Round(time.Millisecond))
	if cfg.Output.Dir != "" {
		pterm.Success.Printfln("Rendered %d module(s), %d file(s) changed", len(outputs), len(written))
	}
	return nil
}
