package am

// Config represents the tspoet configuration
type Config struct {
	Writer  WriterConfig  `mapstructure:"writer" toml:"writer"`
	Output  OutputConfig  `mapstructure:"output" toml:"output"`
	Watch   WatchConfig   `mapstructure:"watch" toml:"watch"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
	GoTypes GoTypesConfig `mapstructure:"gotypes" toml:"gotypes"`
}

// WriterConfig configures how source text is laid out
type WriterConfig struct {
	Indent      string `mapstructure:"indent" toml:"indent"`             // One indentation unit (default: two spaces)
	ColumnLimit int    `mapstructure:"column_limit" toml:"column_limit"` // Wrap points break past this column (default: 100)
}

// OutputConfig configures where rendered files go
type OutputConfig struct {
	Dir         string `mapstructure:"dir" toml:"dir"`                 // Empty = stdout
	Header      string `mapstructure:"header" toml:"header"`           // File comment placed above the imports
	Extension   string `mapstructure:"extension" toml:"extension"`     // Appended to each file name (default: .ts)
	Concurrency int    `mapstructure:"concurrency" toml:"concurrency"` // Files rendered in parallel, 0 = GOMAXPROCS
}

// WatchConfig configures the manifest watcher
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"` // Quiet period before re-rendering (default: 200)
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"` // 0-4, same scale as -v flags
}

// GoTypesConfig configures the Go to TypeScript frontend
type GoTypesConfig struct {
	FieldCase    string   `mapstructure:"field_case" toml:"field_case"`       // json, camel, lower_camel, snake or keep
	Excluded     []string `mapstructure:"excluded" toml:"excluded"`           // Type names never emitted
	ModulePrefix string   `mapstructure:"module_prefix" toml:"module_prefix"` // Prefix for cross-package import sources (default: ./)
}

// Field case strategies for gotypes.field_case
const (
	FieldCaseJSON       = "json"
	FieldCaseCamel      = "camel"
	FieldCaseLowerCamel = "lower_camel"
	FieldCaseSnake      = "snake"
	FieldCaseKeep       = "keep"
)

// ConfigFileName is the project config file located by upward search
const ConfigFileName = "tspoet.toml"

// File permission constants
const (
	DefaultDirPermissions  = 0750
	DefaultFilePermissions = 0644
)
