package generate

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/teranos/tspoet/am"
	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/logger"
)

// Write stores outputs under cfg.Output.Dir, or prints them to stdout when
// no directory is configured. Files whose content is unchanged are not
// rewritten. It returns the paths that were written.
func Write(cfg *am.Config, outputs []Output, stdout io.Writer) ([]string, error) {
	if cfg.Output.Dir == "" {
		for i, o := range outputs {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "// Module: %s\n", o.Name)
			if _, err := stdout.Write(o.Content); err != nil {
				return nil, errors.Wrap(err, "failed to write output")
			}
		}
		return nil, nil
	}
	return writeDir(cfg.Output.Dir, cfg.Output.Extension, outputs)
}

func writeDir(dir, extension string, outputs []Output) ([]string, error) {
	log := logger.ComponentLogger("generate")

	var written []string
	for _, o := range outputs {
		path := o.Path(dir, extension)
		if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, o.Content) {
			log.Debugw("unchanged", logger.FieldFile, path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), am.DefaultDirPermissions); err != nil {
			return written, errors.Wrapf(err, "failed to create directory for %s", path)
		}
		if err := os.WriteFile(path, o.Content, am.DefaultFilePermissions); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", path)
		}
		log.Infow("generated", logger.FieldFile, path, logger.FieldSize, len(o.Content))
		written = append(written, path)
	}
	return written, nil
}

// CheckResult lists generated files that differ from a fresh render
type CheckResult struct {
	UpToDate    bool
	Differences []string // relative to the output directory
}

// Check renders outputs into a temporary directory and compares each file
// with its counterpart under cfg.Output.Dir. A missing file counts as a
// difference. When anything differs the returned error matches
// errors.ErrOutOfDate.
func Check(cfg *am.Config, outputs []Output) (*CheckResult, error) {
	if cfg.Output.Dir == "" {
		return nil, errors.WithHint(
			errors.New("check needs an output directory"),
			"set output.dir in tspoet.toml or pass --out",
		)
	}

	tempDir, err := os.MkdirTemp("", "tspoet-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	if _, err := writeDir(tempDir, cfg.Output.Extension, outputs); err != nil {
		return nil, err
	}

	var diffs []string
	for _, o := range outputs {
		rel := o.Path("", cfg.Output.Extension)
		different, err := filesAreDifferent(filepath.Join(tempDir, rel), filepath.Join(cfg.Output.Dir, rel))
		if err != nil || different {
			diffs = append(diffs, rel)
		}
	}

	result := &CheckResult{UpToDate: len(diffs) == 0, Differences: diffs}
	if !result.UpToDate {
		return result, errors.WithHint(
			errors.Wrapf(errors.ErrOutOfDate, "%d file(s) differ", len(diffs)),
			"run 'tspoet render' to regenerate",
		)
	}
	return result, nil
}

func filesAreDifferent(fresh, existing string) (bool, error) {
	want, err := os.ReadFile(fresh)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", fresh)
	}
	got, err := os.ReadFile(existing)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", existing)
	}
	return !bytes.Equal(want, got), nil
}
