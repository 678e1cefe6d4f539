package scan

import (
	"github.com/saygox/duckdb-httpd-log/internal/directive"
	"github.com/saygox/duckdb-httpd-log/internal/geoip"
	"github.com/saygox/duckdb-httpd-log/internal/logformat"
)

// Binding is the bound, immutable result of Bind: a compiled format plus
// everything needed to scan files against it. It is safe to share across
// goroutines — the compiled ParsedFormat never mutates after bind.
type Binding struct {
	pf  *logformat.ParsedFormat // nil only for the raw-mode "unknown format" fallback
	raw bool

	geoDB        *geoip.DB
	geo          geoip.Lookup
	geoSourceIdx int // -1 when no client_ip/peer_ip column, or GeoIP disabled
}

// Column mirrors logformat.Column; Binding.Columns() projects the full
// output contract, not just the format-derived prefix.
type Column = logformat.Column

// Columns returns the full ordered output projection: format-derived
// columns, then log_file, then (in raw mode) line_number/parse_error/
// raw_line, then (when GeoIP is enabled) geo_country/geo_city.
func (b *Binding) Columns() []Column {
	var cols []Column
	if b.pf != nil {
		cols = append(cols, b.pf.Schema(b.raw)...)
	}
	cols = append(cols, Column{Name: "log_file", Type: directive.TypeText})
	if b.raw {
		cols = append(cols,
			Column{Name: "line_number", Type: directive.TypeInt64},
			Column{Name: "parse_error", Type: directive.TypeBool},
			Column{Name: "raw_line", Type: directive.TypeText},
		)
	}
	if b.geo != nil {
		cols = append(cols,
			Column{Name: "geo_country", Type: directive.TypeText},
			Column{Name: "geo_city", Type: directive.TypeText},
		)
	}
	return cols
}

// Close releases resources opened at bind time (currently just an open
// GeoIP database, if any).
func (b *Binding) Close() error {
	if b.geoDB != nil {
		return b.geoDB.Close()
	}
	return nil
}

// Row is one projected output row, in Columns() order.
type Row struct {
	Values []any
}
