package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/teranos/tspoet/am"
	"github.com/teranos/tspoet/generate"
	"github.com/teranos/tspoet/logger"
)

// report prints a detail line to stderr when the configured verbosity
// enables category. Stdout is reserved for rendered source.
func report(cfg *am.Config, category logger.OutputCategory, format string, args ...interface{}) {
	if !logger.ShouldOutput(cfg.Log.Verbosity, category) {
		return
	}
	pterm.Fprintln(os.Stderr, fmt.Sprintf("[%s] %s", logger.CategoryName(category), fmt.Sprintf(format, args...)))
}

// reportConfig describes the effective configuration at -vv
func reportConfig(cfg *am.Config) {
	report(cfg, logger.OutputConfig, "verbosity %s, output %q, indent %q, column limit %d",
		logger.LevelName(cfg.Log.Verbosity), cfg.Output.Dir, cfg.Writer.Indent, cfg.Writer.ColumnLimit)
}

// reportOutputs lists what was rendered and written
func reportOutputs(cfg *am.Config, outputs []generate.Output, written []string) {
	for _, path := range written {
		report(cfg, logger.OutputProgress, "wrote %s", path)
	}
	for _, o := range outputs {
		report(cfg, logger.OutputImports, "%s imports from %d module(s)", o.Name, o.Imports)
		report(cfg, logger.OutputDeclarations, "%s has %d member(s) from %s", o.Name, o.Members, o.Source)
	}
}
