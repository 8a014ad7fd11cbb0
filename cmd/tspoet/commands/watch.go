package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/tspoet/am"
	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/generate"
	"github.com/teranos/tspoet/logger"
	"github.com/teranos/tspoet/manifest"
)

// WatchCmd re-renders manifests on change
var WatchCmd = &cobra.Command{
	Use:   "watch <manifest|dir>...",
	Short: "Re-render manifests when they change",
	Long: `Render manifests once, then keep watching them and re-render each
manifest after it changes. Changes are debounced by watch.debounce_ms.
Manifests that fail to decode are reported and skipped until fixed.

Manifests added to a directory after the watch started are not picked up.

Examples:
  tspoet watch schema/ -o src/generated`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	reportConfig(cfg)
	if cfg.Output.Dir == "" {
		return errors.WithHint(
			errors.New("watch needs an output directory"),
			"set output.dir in tspoet.toml or pass --out",
		)
	}

	inputs, err := generate.ExpandInputs(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outputs, err := generate.RenderManifests(ctx, cfg, inputs)
	if err != nil {
		return err
	}
	written, err := generate.Write(cfg, outputs, nil)
	if err != nil {
		return err
	}
	reportOutputs(cfg, outputs, written)

	watcher, err := manifest.NewWatcher(inputs, cfg.Debounce())
	if err != nil {
		return err
	}
	watcher.OnChange(func(path string, file *manifest.File, err error) {
		report(cfg, logger.OutputWatchEvents, "%s changed", path)
		rerender(cfg, path, file, err)
	})
	watcher.Start()

	pterm.Info.Printfln("Watching %d manifest(s), press Ctrl+C to stop", len(inputs))
	<-ctx.Done()

	if err := watcher.Stop(); err != nil {
		return errors.Wrap(err, "failed to stop watcher")
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func rerender(cfg *am.Config, path string, file *manifest.File, err error) {
	log := logger.ComponentLogger("watch")

	if err == nil {
		var out generate.Output
		out, err = generate.RenderFile(cfg, file)
		if err == nil {
			var written []string
			written, err = generate.Write(cfg, []generate.Output{out}, nil)
			if err == nil && len(written) > 0 {
				pterm.Success.Printfln("Rendered %s", written[0])
			}
		}
	}

	if err != nil {
		log.Warnw("manifest not rendered", logger.FieldFile, path, logger.FieldError, err)
		pterm.Error.Printfln("%s: %v", path, err)
	}
}
