// Package config loads cmd/httpdlog's YAML runtime configuration and merges
// it with CLI flags and hardcoded defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the YAML config file schema. Optional-pointer fields
// distinguish "not set in the file" from the zero value.
type FileConfig struct {
	Paths      []string `yaml:"paths"`
	FormatStr  string   `yaml:"format_str"`
	FormatType string   `yaml:"format_type"`
	Conf       string   `yaml:"conf"`
	Raw        *bool    `yaml:"raw"`
	GeoIPDB    string   `yaml:"geoip_db"`
	WatchConf  *bool    `yaml:"watch_conf"`
	Theme      string   `yaml:"theme"`
	Width      *int     `yaml:"width"`
}

// RuntimeDefaults carries fully-resolved defaults sourced from YAML, ready
// to be overridden by explicit CLI flags.
type RuntimeDefaults struct {
	Paths      []string
	FormatStr  string
	FormatType string
	Conf       string
	Raw        bool
	GeoIPDB    string
	WatchConf  bool
	Theme      string
	Width      int
	PollEvery  time.Duration
}

// detectConfigPath extracts the --config flag from raw arguments, before
// flag.Parse runs, so the config file can seed flag defaults.
func detectConfigPath(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
		if arg == "--config" || arg == "-config" {
			if i+1 < len(args) {
				return args[i+1]
			}
		}
	}
	return ""
}

// DetectConfigPath is the exported form of detectConfigPath, for cmd/httpdlog.
func DetectConfigPath(args []string) string {
	return detectConfigPath(args)
}

func loadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	return loadFileConfig(path)
}

// Defaults merges a FileConfig over hardcoded defaults, returning resolved
// RuntimeDefaults. An empty path is not an error: it yields the hardcoded
// defaults unchanged.
func Defaults(path string) (RuntimeDefaults, error) {
	defaults := RuntimeDefaults{
		Paths:      []string{"access.log"},
		FormatType: "",
		Raw:        false,
		WatchConf:  false,
		Theme:      "dark",
		Width:      120,
		PollEvery:  2 * time.Second,
	}
	if path == "" {
		return defaults, nil
	}

	fc, err := loadFileConfig(path)
	if err != nil {
		return defaults, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return applyFileConfig(defaults, fc)
}

func applyFileConfig(defaults RuntimeDefaults, fc FileConfig) (RuntimeDefaults, error) {
	if len(fc.Paths) > 0 {
		defaults.Paths = fc.Paths
	}
	if fc.FormatStr != "" {
		defaults.FormatStr = fc.FormatStr
	}
	if fc.FormatType != "" {
		defaults.FormatType = fc.FormatType
	}
	if fc.Conf != "" {
		defaults.Conf = fc.Conf
	}
	if fc.Raw != nil {
		defaults.Raw = *fc.Raw
	}
	if fc.GeoIPDB != "" {
		defaults.GeoIPDB = fc.GeoIPDB
	}
	if fc.WatchConf != nil {
		defaults.WatchConf = *fc.WatchConf
	}
	if fc.Theme != "" {
		defaults.Theme = fc.Theme
	}
	if fc.Width != nil {
		defaults.Width = *fc.Width
	}
	return defaults, nil
}
