// Package geoip optionally enriches client_ip/peer_ip columns with country
// and city lookups from a MaxMind-compatible database.
package geoip

import (
	"fmt"
	"net"

	geoip2 "github.com/oschwald/geoip2-golang"
)

// Info is the enrichment projected onto a scanned row.
type Info struct {
	CountryISO  string
	CountryName string
	City        string
}

// Lookup resolves Info for an IP string; ok is false when the address can't
// be parsed or carries no usable record.
type Lookup func(ip string) (Info, bool)

// DB wraps an open MaxMind City database.
type DB struct {
	reader *geoip2.Reader
}

// Open opens the database at path. Callers must Close it when done.
func Open(path string) (*DB, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open %s: %w", path, err)
	}
	return &DB{reader: reader}, nil
}

// Close releases the underlying database file.
func (db *DB) Close() error {
	return db.reader.Close()
}

// Lookup returns a Lookup function bound to this database.
func (db *DB) Lookup() Lookup {
	return func(ip string) (Info, bool) {
		parsed := net.ParseIP(ip)
		if parsed == nil {
			return Info{}, false
		}

		record, err := db.reader.City(parsed)
		if err != nil || record == nil {
			return Info{}, false
		}

		info := Info{}
		if record.Country.IsoCode != "" {
			info.CountryISO = record.Country.IsoCode
		}
		if name, ok := record.Country.Names["en"]; ok {
			info.CountryName = name
		}
		if name, ok := record.City.Names["en"]; ok {
			info.City = name
		}

		if info.CountryISO == "" && info.CountryName == "" && info.City == "" {
			return Info{}, false
		}
		return info, true
	}
}
