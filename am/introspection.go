package am

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/tspoet/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"        // ~/.tspoet/tspoet.toml
	SourceProject     ConfigSource = "project"     // tspoet.toml found by upward search
	SourceFile        ConfigSource = "file"        // --config path
	SourceEnvironment ConfigSource = "environment" // TSPOET_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // File path or environment variable name
}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"`
}

// ConfigIntrospection provides metadata about the active configuration
type ConfigIntrospection struct {
	ConfigFile string        `json:"config_file"`
	Settings   []SettingInfo `json:"settings"`
}

// GetConfigIntrospection describes the merged configuration, or the single
// file at path when one is given.
func GetConfigIntrospection(path string) (*ConfigIntrospection, error) {
	if path != "" {
		v := newViper()
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}

		fileKeys := viper.New()
		fileKeys.SetConfigFile(path)
		fileKeys.SetConfigType("toml")
		if err := fileKeys.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		sources := make(map[string]SourceInfo)
		for _, key := range fileKeys.AllKeys() {
			sources[key] = SourceInfo{Source: SourceFile, Path: path}
		}
		return introspect(v, sources), nil
	}

	if _, err := Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}
	return introspect(GetViper(), ConfigSources), nil
}

func introspect(v *viper.Viper, sources map[string]SourceInfo) *ConfigIntrospection {
	result := &ConfigIntrospection{
		ConfigFile: v.ConfigFileUsed(),
		Settings:   make([]SettingInfo, 0),
	}

	keys := v.AllKeys()
	sort.Strings(keys)

	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := sources[key]; ok {
			info = si
		}

		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(envKey); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}

		result.Settings = append(result.Settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}

	return result
}

// CountBySource tallies settings per source for the `am show` summary line
func (ci *ConfigIntrospection) CountBySource() map[ConfigSource]int {
	counts := make(map[ConfigSource]int)
	for _, s := range ci.Settings {
		counts[s.Source]++
	}
	return counts
}
