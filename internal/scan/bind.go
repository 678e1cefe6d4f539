package scan

import (
	"fmt"
	"os"
	"sort"

	"github.com/saygox/duckdb-httpd-log/internal/detect"
	"github.com/saygox/duckdb-httpd-log/internal/geoip"
	"github.com/saygox/duckdb-httpd-log/internal/httpdconf"
	"github.com/saygox/duckdb-httpd-log/internal/logformat"
	"github.com/saygox/duckdb-httpd-log/internal/logreader"
)

// sampleSize is how many non-empty lines the detector gets to work with,
// taken from the head of the first available file.
const sampleSize = 10

// Bind resolves opts into a compiled format and returns a Binding ready for
// ScanFile/ScanFiles.
func Bind(opts Options) (*Binding, error) {
	b := &Binding{raw: opts.Raw}

	switch {
	case opts.FormatStr != "":
		pf, err := logformat.Compile(opts.FormatStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		b.pf = pf

	case opts.Conf != "":
		pf, err := bindFromConf(opts)
		if err != nil {
			return nil, err
		}
		b.pf = pf

	case opts.FormatType == "common":
		pf, err := logformat.Compile(logformat.CommonFormat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		b.pf = pf

	case opts.FormatType == "combined":
		pf, err := logformat.Compile(logformat.CombinedFormat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		b.pf = pf

	case opts.FormatType != "":
		return nil, fmt.Errorf("%w: %q (supported: common, combined)", ErrInvalidFormatType, opts.FormatType)

	default:
		samples, err := sampleLines(opts.Paths, sampleSize)
		if err != nil {
			return nil, fmt.Errorf("%w: sampling for auto-detect: %v", ErrConfigError, err)
		}
		result, err := detect.Detect(samples, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoMatchingFormat, err)
		}
		if result.Kind == detect.KindUnknown {
			if !opts.Raw {
				return nil, fmt.Errorf("%w: no built-in format matched and raw mode was not requested", ErrNoMatchingFormat)
			}
			b.pf = nil
		} else {
			b.pf = result.Compiled
		}
	}

	if opts.GeoIPDB != "" {
		db, err := geoip.Open(opts.GeoIPDB)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigError, err)
		}
		b.geoDB = db
		b.geo = db.Lookup()
		b.geoSourceIdx = resolveGeoSourceColumn(b.pf, b.raw)
	}

	return b, nil
}

// bindFromConf implements conf-driven format selection: entries sorted by
// line number, filtered to access-log entries, either narrowed to a
// caller-named nickname or tried in default/inline/named order.
func bindFromConf(opts Options) (*logformat.ParsedFormat, error) {
	entries, err := httpdconf.ParseConfigFile(opts.Conf, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: reading conf %s: %v", ErrConfigError, opts.Conf, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].LineNumber < entries[j].LineNumber })

	var access []httpdconf.ConfigEntry
	for _, e := range entries {
		if e.LogType == "access" {
			access = append(access, e)
		}
	}

	var candidates []detect.Candidate
	if opts.FormatType != "" {
		for _, e := range access {
			if e.FormatType == "named" && e.Nickname == opts.FormatType {
				candidates = append(candidates, detect.Candidate{FormatString: e.FormatString, FormatType: e.FormatType, Nickname: e.Nickname})
			}
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: nickname %q not found in %s", ErrConfigError, opts.FormatType, opts.Conf)
		}
	} else {
		candidates = append(candidates, orderedCandidates(access, "default")...)
		candidates = append(candidates, orderedCandidates(access, "inline")...)
		candidates = append(candidates, orderedCandidates(access, "named")...)
	}

	samples, err := sampleLines(opts.Paths, sampleSize)
	if err != nil {
		return nil, fmt.Errorf("%w: sampling for auto-detect: %v", ErrConfigError, err)
	}

	result, err := detect.Detect(samples, candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMatchingFormat, err)
	}
	return result.Compiled, nil
}

func orderedCandidates(entries []httpdconf.ConfigEntry, formatType string) []detect.Candidate {
	var out []detect.Candidate
	for _, e := range entries {
		if e.FormatType == formatType {
			out = append(out, detect.Candidate{FormatString: e.FormatString, FormatType: e.FormatType, Nickname: e.Nickname})
		}
	}
	return out
}

// sampleLines reads up to n non-empty lines from the head of the first path.
func sampleLines(paths []string, n int) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to sample")
	}
	f, err := os.Open(paths[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := logreader.New(f)
	var samples []string
	var buf []byte
	for len(samples) < n {
		line, ok, err := r.ReadLine(buf)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		buf = line
		if len(line) > 0 {
			samples = append(samples, string(line))
		}
	}
	return samples, nil
}

// resolveGeoSourceColumn finds the schema index of client_ip (preferred) or
// peer_ip, the columns GeoIP enrichment is derived from. -1 means neither is
// present, so enrichment is a no-op.
func resolveGeoSourceColumn(pf *logformat.ParsedFormat, raw bool) int {
	if pf == nil {
		return -1
	}
	cols := pf.Schema(raw)
	fallback := -1
	for i, c := range cols {
		if c.Name == "client_ip" {
			return i
		}
		if c.Name == "peer_ip" && fallback == -1 {
			fallback = i
		}
	}
	return fallback
}
