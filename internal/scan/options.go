// Package scan is the host-facing seam: it binds caller options to a
// compiled format and drives per-file/multi-file scans, playing the role a
// host query engine would play around a table function.
package scan

// Options is the caller-facing configuration for a bind. Paths are
// already-resolved file paths: globbing is an excluded, host-side concern.
type Options struct {
	Paths []string

	// FormatStr, when non-empty, wins over everything else.
	FormatStr string

	// FormatType is a named built-in ("common"/"combined") when Conf is
	// empty, or a conf nickname to look up when Conf is set.
	FormatType string

	// Conf, when set, is an httpd.conf-style file scanned for LogFormat /
	// CustomLog / ErrorLogFormat declarations.
	Conf string

	// Raw includes line_number/parse_error/raw_line columns and emits
	// parse-error rows instead of silently dropping them.
	Raw bool

	// GeoIPDB, when set, opens a MaxMind database and appends geo_country/
	// geo_city columns derived from the client_ip column, or from peer_ip
	// when the schema has no client_ip.
	GeoIPDB string
}
