package manifest

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/tspoet/errors"
)

// Format is a manifest serialization
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// IsManifestPath reports whether path has a manifest extension
func IsManifestPath(path string) bool {
	_, ok := FormatFromPath(path)
	return ok
}

// DecodeFile reads and validates the manifest at path
func DecodeFile(path string) (*File, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, errors.WithHint(
			errors.NewInvalidManifestf("unrecognized manifest extension %q", filepath.Ext(path)),
			"manifests end in .yaml, .yml, .toml or .json",
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	f.path = path
	return f, nil
}

// Decode parses and validates a manifest. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File

	switch format {
	case FormatYAML, FormatJSON:
		// JSON is a subset of YAML; one decoder serves both
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.NewInvalidManifestf("empty manifest")
			}
			return nil, errors.NewInvalidManifestf("%v", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, errors.NewInvalidManifestf("%v", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.NewInvalidManifestf("unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.NewInvalidManifestf("unknown manifest format %q", format)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}
