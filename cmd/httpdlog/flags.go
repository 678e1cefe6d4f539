package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/saygox/duckdb-httpd-log/internal/config"
	"github.com/saygox/duckdb-httpd-log/internal/scan"
)

// bindFlags are the flags shared by the scan and browse subcommands.
type bindFlags struct {
	paths      string
	formatStr  string
	formatType string
	conf       string
	raw        bool
	geoIPDB    string
	watchConf  bool
	configPath string
}

func registerBindFlags(fs *flag.FlagSet, defaults config.RuntimeDefaults) *bindFlags {
	f := &bindFlags{}
	fs.StringVar(&f.paths, "paths", strings.Join(defaults.Paths, ","), "comma-separated log file paths or glob patterns")
	fs.StringVar(&f.formatStr, "format-str", defaults.FormatStr, "explicit Apache LogFormat string (wins over all other selection)")
	fs.StringVar(&f.formatType, "format-type", defaults.FormatType, `built-in format ("common", "combined"), or a conf nickname when -conf is set`)
	fs.StringVar(&f.conf, "conf", defaults.Conf, "path to an httpd.conf-style file to derive the format from")
	fs.BoolVar(&f.raw, "raw", defaults.Raw, "include line_number/parse_error/raw_line columns and emit parse-error rows")
	fs.StringVar(&f.geoIPDB, "geoip-db", defaults.GeoIPDB, "path to a MaxMind GeoLite2-City .mmdb file (enables geo_country/geo_city columns)")
	fs.BoolVar(&f.watchConf, "watch-conf", defaults.WatchConf, "re-bind the format whenever -conf changes on disk")
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file providing defaults for the flags above")
	return f
}

func (f *bindFlags) resolvePaths() ([]string, error) {
	var out []string
	seen := map[string]struct{}{}
	for _, pattern := range strings.Split(f.paths, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no paths matched -paths %q", f.paths)
	}
	return out, nil
}

func (f *bindFlags) options(paths []string) scan.Options {
	return scan.Options{
		Paths:      paths,
		FormatStr:  f.formatStr,
		FormatType: f.formatType,
		Conf:       f.conf,
		Raw:        f.raw,
		GeoIPDB:    f.geoIPDB,
	}
}

// loadDefaults pre-scans args for -config/--config before flag.Parse runs, so
// the YAML file can seed flag defaults that explicit flags still override.
func loadDefaults(args []string) config.RuntimeDefaults {
	path := config.DetectConfigPath(args)
	defaults, err := config.Defaults(path)
	if err != nil {
		// Fall back to hardcoded defaults; the explicit flags still apply.
		fallback, _ := config.Defaults("")
		return fallback
	}
	return defaults
}
