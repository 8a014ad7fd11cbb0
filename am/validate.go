package am

import (
	"strings"

	"github.com/teranos/tspoet/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// An indent unit must be non-empty whitespace; anything else corrupts the output
	if c.Writer.Indent == "" || strings.Trim(c.Writer.Indent, " \t") != "" {
		return errors.Newf("writer.indent must be spaces or tabs, got %q", c.Writer.Indent)
	}

	if c.Writer.ColumnLimit <= 0 {
		return errors.Newf("writer.column_limit must be > 0, got %d", c.Writer.ColumnLimit)
	}

	if c.Output.Extension != "" && !strings.HasPrefix(c.Output.Extension, ".") {
		return errors.Newf("output.extension must start with '.', got %q", c.Output.Extension)
	}

	// Concurrency: 0 = GOMAXPROCS, negative = invalid
	if c.Output.Concurrency < 0 {
		return errors.Newf("output.concurrency must be >= 0, got %d", c.Output.Concurrency)
	}

	// Debounce: 0 = re-render on every event
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	switch c.GoTypes.FieldCase {
	case "", FieldCaseJSON, FieldCaseCamel, FieldCaseLowerCamel, FieldCaseSnake, FieldCaseKeep:
	default:
		return errors.WithHintf(
			errors.Newf("gotypes.field_case %q is not recognized", c.GoTypes.FieldCase),
			"use one of %s, %s, %s, %s, %s", FieldCaseJSON, FieldCaseCamel, FieldCaseLowerCamel, FieldCaseSnake, FieldCaseKeep,
		)
	}

	return nil
}
