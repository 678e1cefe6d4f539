// Package detect auto-selects a log format by trial-matching sample lines
// against Combined and Common, or against caller-supplied candidates.
package detect

import (
	"errors"

	"github.com/saygox/duckdb-httpd-log/internal/logformat"
)

// ErrNoMatchingFormat is returned when a conf file drove detection and no
// candidate cleared the match-rate threshold.
var ErrNoMatchingFormat = errors.New("detect: no matching format")

const (
	KindCombined = "combined"
	KindCommon   = "common"
	KindUnknown  = "unknown"
)

// Candidate is one httpd.conf-derived LogFormat worth trying, already
// filtered and ordered by the caller (default entries, then inline, then
// named, each by ascending line number).
type Candidate struct {
	FormatString string
	FormatType   string // "named", "default", "inline"
	Nickname     string
}

// Format is the outcome of detection: either a named built-in, a conf
// candidate, or KindUnknown (the caller should fall back to raw mode).
type Format struct {
	Kind     string
	Nickname string
	Compiled *logformat.ParsedFormat
}

// Detect selects the first format whose match count against samples is at
// least ⌈len(samples)/2⌉. When candidates is non-empty, only the candidates
// are tried, in order (a candidate also needs at least one match), and
// ErrNoMatchingFormat is returned if none clears the bar, including when
// samples is empty. When candidates is empty, the canonical Combined format
// is tried, then Common, and KindUnknown is returned with a nil error if
// neither clears the bar.
func Detect(samples []string, candidates []Candidate) (Format, error) {
	if len(samples) == 0 {
		if len(candidates) > 0 {
			return Format{}, ErrNoMatchingFormat
		}
		return Format{Kind: KindUnknown}, nil
	}
	threshold := ceilHalf(len(samples))

	for _, c := range candidates {
		pf, err := logformat.Compile(c.FormatString)
		if err != nil {
			continue
		}
		if n := countMatches(pf, samples); n > 0 && n >= threshold {
			return Format{Kind: c.FormatType, Nickname: c.Nickname, Compiled: pf}, nil
		}
	}
	if len(candidates) > 0 {
		return Format{}, ErrNoMatchingFormat
	}

	if pf, err := logformat.Compile(logformat.CombinedFormat); err == nil {
		if countMatches(pf, samples) >= threshold {
			return Format{Kind: KindCombined, Compiled: pf}, nil
		}
	}

	if pf, err := logformat.Compile(logformat.CommonFormat); err == nil {
		if countMatches(pf, samples) >= threshold {
			return Format{Kind: KindCommon, Compiled: pf}, nil
		}
	}

	return Format{Kind: KindUnknown}, nil
}

func countMatches(pf *logformat.ParsedFormat, samples []string) int {
	n := 0
	for _, s := range samples {
		if pf.Regex.MatchString(s) {
			n++
		}
	}
	return n
}

func ceilHalf(n int) int {
	return (n + 1) / 2
}
