package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/saygox/duckdb-httpd-log/internal/config"
)

func TestResolvePathsLiteral(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "access.log")
	if err := os.WriteFile(p, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := &bindFlags{paths: p}
	got, err := f.resolvePaths()
	if err != nil {
		t.Fatalf("resolvePaths: %v", err)
	}
	if len(got) != 1 || got[0] != p {
		t.Errorf("got %v, want [%s]", got, p)
	}
}

func TestResolvePathsGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	f := &bindFlags{paths: filepath.Join(dir, "*.log")}
	got, err := f.resolvePaths()
	if err != nil {
		t.Fatalf("resolvePaths: %v", err)
	}
	sort.Strings(got)
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2: %v", len(got), got)
	}
}

func TestResolvePathsNoMatch(t *testing.T) {
	f := &bindFlags{paths: ""}
	_, err := f.resolvePaths()
	if err == nil {
		t.Fatal("expected an error for an empty pattern list")
	}
}

func TestOptionsCarriesFlags(t *testing.T) {
	f := &bindFlags{formatStr: "%h %l", raw: true, geoIPDB: "geo.mmdb"}
	opts := f.options([]string{"a.log"})
	if opts.FormatStr != "%h %l" || !opts.Raw || opts.GeoIPDB != "geo.mmdb" {
		t.Errorf("options() = %+v", opts)
	}
	if len(opts.Paths) != 1 || opts.Paths[0] != "a.log" {
		t.Errorf("Paths = %v", opts.Paths)
	}
}

func TestFormatCellNil(t *testing.T) {
	if got := formatCell(nil); got != "-" {
		t.Errorf("formatCell(nil) = %q, want -", got)
	}
}

func TestLoadDefaultsNoConfigFlag(t *testing.T) {
	d := loadDefaults([]string{"httpdlog", "scan", "-paths", "x.log"})
	if d.Theme == "" {
		t.Error("expected hardcoded defaults when no -config flag is present")
	}
}

func TestLoadDefaultsWithConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "httpdlog.yaml")
	if err := os.WriteFile(path, []byte("format_type: combined\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := loadDefaults([]string{"httpdlog", "scan", "-config", path})
	if d.FormatType != "combined" {
		t.Errorf("FormatType = %q, want combined", d.FormatType)
	}

	// Sanity-check against the package directly too.
	direct, err := config.Defaults(path)
	if err != nil {
		t.Fatalf("config.Defaults: %v", err)
	}
	if direct.FormatType != d.FormatType {
		t.Errorf("mismatch between loadDefaults and config.Defaults")
	}
}
