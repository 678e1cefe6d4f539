package scan

import (
	"fmt"

	"github.com/saygox/duckdb-httpd-log/internal/httpdconf"
)

// ConfEntry is the queryable projection of one httpd.conf directive, mirroring
// the original extension's read_httpd_conf table function output schema.
type ConfEntry struct {
	LogType      string
	FormatType   string
	Nickname     string
	FormatString string
	ConfigFile   string
	LineNumber   int
}

// ListConfEntries parses path and returns every LogFormat/CustomLog/
// ErrorLogFormat entry found, in file order. ErrorLog directives are consumed
// by the parser but never produce an entry.
func ListConfEntries(path string) ([]ConfEntry, error) {
	entries, err := httpdconf.ParseConfigFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: reading conf %s: %v", ErrConfigError, path, err)
	}
	out := make([]ConfEntry, len(entries))
	for i, e := range entries {
		out[i] = ConfEntry{
			LogType:      e.LogType,
			FormatType:   e.FormatType,
			Nickname:     e.Nickname,
			FormatString: e.FormatString,
			ConfigFile:   e.ConfigFile,
			LineNumber:   e.LineNumber,
		}
	}
	return out, nil
}
