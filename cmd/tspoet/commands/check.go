package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/generate"
)

// CheckCmd verifies generated files
var CheckCmd = &cobra.Command{
	Use:   "check <manifest|dir>...",
	Short: "Verify generated files are up to date",
	Long: `Render manifests into a temporary directory and compare the result with
the files under output.dir. Exits with status 1 when any file differs or is
missing, which makes it suitable for CI.

Examples:
  tspoet check schema/ -o src/generated`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	inputs, err := generate.ExpandInputs(args)
	if err != nil {
		return err
	}
	outputs, err := generate.RenderManifests(cmd.Context(), cfg, inputs)
	if err != nil {
		return err
	}
	return reportCheck(generate.Check(cfg, outputs))
}

// reportCheck prints the differing files of a check
func reportCheck(result *generate.CheckResult, err error) error {
	if err != nil && !errors.IsOutOfDate(err) {
		return err
	}
	if result.UpToDate {
		pterm.Success.Println("Generated files are up to date")
		return nil
	}

	pterm.Warning.Printfln("%d generated file(s) are out of date:", len(result.Differences))
	for _, path := range result.Differences {
		pterm.Printfln("  %s", path)
	}
	return err
}
