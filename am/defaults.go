package am

import (
	"time"

	"github.com/spf13/viper"

	"github.com/teranos/tspoet/poet"
)

// Default values for settings that have a natural zero
const (
	DefaultHeader     = "Code generated by tspoet. DO NOT EDIT."
	DefaultExtension  = ".ts"
	DefaultDebounceMS = 200
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Writer defaults
	v.SetDefault("writer.indent", poet.DefaultIndent)
	v.SetDefault("writer.column_limit", poet.DefaultColumnLimit)

	// Output defaults
	v.SetDefault("output.dir", "")
	v.SetDefault("output.header", DefaultHeader)
	v.SetDefault("output.extension", DefaultExtension)
	v.SetDefault("output.concurrency", 0)

	// Watch defaults
	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)

	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	// Go frontend defaults
	v.SetDefault("gotypes.field_case", FieldCaseJSON)
	v.SetDefault("gotypes.excluded", []string{})
	v.SetDefault("gotypes.module_prefix", "./")
}

// BindEnvVars binds settings whose env names do not follow the key replacer
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("output.dir", "TSPOET_OUTPUT_DIR", "TSPOET_OUT")
	v.BindEnv("log.verbosity", "TSPOET_LOG_VERBOSITY", "TSPOET_VERBOSITY")
}

// DefaultConfig returns a config populated only from defaults
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always decode
		panic(err)
	}
	return cfg
}

// WriterOptions maps the writer section onto code writer options
func (c *Config) WriterOptions() []poet.WriterOption {
	var opts []poet.WriterOption
	if c.Writer.Indent != "" {
		opts = append(opts, poet.WithIndent(c.Writer.Indent))
	}
	if c.Writer.ColumnLimit > 0 {
		opts = append(opts, poet.WithColumnLimit(c.Writer.ColumnLimit))
	}
	return opts
}

// Debounce returns the watch quiet period as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
