package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/tspoet/am"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage tspoet configuration",
	Long: `am - Manage tspoet configuration

Configuration sources (later overrides earlier):
1. Default values
2. User config (~/.tspoet/tspoet.toml)
3. Project config (tspoet.toml, searched upward from the working directory)
4. Environment variables (TSPOET_* prefix)
5. Command line flags

A file given with --config replaces the user and project configs.

Examples:
  tspoet am show                  # Show each setting and where it came from
  tspoet am show --format toml    # Show the effective configuration as TOML
  tspoet am init                  # Write tspoet.toml with defaults
  tspoet am validate              # Validate the current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current tspoet configuration and the source of each setting",
	RunE:  runAmShow,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with default values",
	Long:  "Write a config file with default values, tspoet.toml in the working directory unless a path is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAmInit,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var (
	configFormat string
	initForce    bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "table", "Output format: table, toml, json, yaml")
	amInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file (the old one is kept as .back1)")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amInitCmd)
	AmCmd.AddCommand(amValidateCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch configFormat {
	case "table":
		return showTable(cmd)

	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Fprintf(out, "# tspoet configuration\n%s", data)

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Fprintf(out, "# tspoet configuration\n%s", data)

	default:
		return fmt.Errorf("unsupported format: %s (supported: table, toml, json, yaml)", configFormat)
	}
	return nil
}

func showTable(cmd *cobra.Command) error {
	intro, err := am.GetConfigIntrospection(configPath)
	if err != nil {
		return err
	}

	rows := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range intro.Settings {
		rows = append(rows, []string{s.Key, fmt.Sprintf("%v", s.Value), string(s.Source), s.SourcePath})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(cmd.OutOrStdout()).Render(); err != nil {
		return err
	}

	counts := intro.CountBySource()
	sources := make([]string, 0, len(counts))
	for source, n := range counts {
		sources = append(sources, fmt.Sprintf("%s: %d", source, n))
	}
	sort.Strings(sources)
	pterm.Println()
	if intro.ConfigFile != "" {
		pterm.Info.Printfln("Config file: %s", intro.ConfigFile)
	}
	pterm.Info.Printfln("Settings by source: %v", sources)
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.ConfigFileName
	if len(args) == 1 {
		path = args[0]
	}
	if err := am.InitFile(path, initForce); err != nil {
		return err
	}
	pterm.Success.Printfln("Wrote %s", path)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	// Loading validates
	if _, err := LoadConfig(cmd); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}
