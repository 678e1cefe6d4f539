// Package logextract applies a compiled logformat.ParsedFormat to a single
// log line and produces typed column values.
package logextract

import (
	"github.com/saygox/duckdb-httpd-log/internal/directive"
	"github.com/saygox/duckdb-httpd-log/internal/logformat"
)

// Scratch holds the per-thread capture-slot buffer reused across lines of a
// single file scan. It must never be shared across goroutines.
type Scratch struct {
	idx []int
}

// Row is one extracted line: Values are ordered per ParsedFormat.Schema,
// nil entries are SQL-style nulls. RawLine is non-nil only for parse-error
// rows emitted in raw mode. LogFile/LineNumber echo the call's source
// metadata, for the caller to project alongside Values.
type Row struct {
	Values     []any
	LogFile    string
	LineNumber int64
	ParseError bool
	RawLine    *string
}

// Extract matches line against pf's compiled regex and converts captures to
// typed values. matched reports whether the regex matched; when it is false
// and raw is false the caller must not emit a row at all.
func Extract(scratch *Scratch, pf *logformat.ParsedFormat, line []byte, logFile string, lineNumber int64, raw bool) (Row, bool) {
	scratch.idx = pf.Regex.FindSubmatchIndex(line)
	if scratch.idx == nil {
		if !raw {
			return Row{}, false
		}
		rawCopy := string(line)
		return Row{LogFile: logFile, LineNumber: lineNumber, ParseError: true, RawLine: &rawCopy}, false
	}

	captures := materializeCaptures(line, scratch.idx)

	groupLeader := make(map[int]bool, len(pf.Groups))
	for _, g := range pf.Groups {
		groupLeader[g.Leader] = true
	}

	var values []any
	captureIdx := 1 // 1-based capture group cursor (group 0 is the whole match)

	for fi := 0; fi < len(pf.Fields); fi++ {
		f := &pf.Fields[fi]
		capturing := !f.ShouldSkip || f.TimestampGroupID != 0

		if f.Directive == "%t" && f.TimestampGroupID != 0 {
			// Handled once, at the group's leader; combineTimestampGroup itself
			// advances captureIdx past every member's slot, leader and
			// non-leaders alike, so non-leaders need no action here.
			if groupLeader[fi] {
				groupVals, rawStr := combineTimestampGroup(pf, captures, &captureIdx, fi)
				if !f.ShouldSkip {
					values = append(values, groupVals)
					if raw {
						values = append(values, nullableString(rawStr))
					}
				}
			}
			continue
		}

		var capture string
		hadCapture := false
		if capturing {
			capture = captures[captureIdx]
			hadCapture = true
			captureIdx++
		}

		if f.ShouldSkip {
			continue
		}

		switch f.Directive {
		case "%r", "%>r", "%<r":
			values = append(values, extractRequestLine(capture, f)...)
		default:
			if !hadCapture {
				values = append(values, nil)
				continue
			}
			values = append(values, convertValue(f, capture))
		}
	}

	row := Row{Values: values, LogFile: logFile, LineNumber: lineNumber}
	return row, true
}

func materializeCaptures(line []byte, idx []int) []string {
	n := len(idx) / 2
	out := make([]string, n)
	for i := 0; i < n; i++ {
		s, e := idx[2*i], idx[2*i+1]
		if s < 0 || e < 0 {
			out[i] = ""
			continue
		}
		out[i] = string(line[s:e])
	}
	return out
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// convertValue applies the per-type conversion policy.
func convertValue(f *logformat.FormatField, capture string) any {
	switch f.Directive {
	case "%X":
		return convertConnectionStatus(capture)
	}

	switch f.Type {
	case directive.TypeInt32:
		return convertInt32(f, capture)
	case directive.TypeInt64:
		return convertInt64(f, capture)
	case directive.TypeInterval:
		return convertDuration(f, capture)
	case directive.TypeTimestamp:
		// non-group-leader plain %t shouldn't reach here in practice.
		return nullableString(capture)
	default:
		return convertText(capture)
	}
}

func convertText(capture string) any {
	if capture == "-" {
		return nil
	}
	return capture
}

// isNamedByteColumn reports whether a column name uses the "-"-to-zero
// exception instead of the usual "-"-to-null policy.
func isNamedByteColumn(name string) bool {
	switch name {
	case "bytes", "bytes_clf", "bytes_received", "bytes_sent", "bytes_transferred":
		return true
	}
	return false
}

func convertConnectionStatus(capture string) any {
	switch capture {
	case "X":
		return "aborted"
	case "+":
		return "keepalive"
	case "-":
		return "close"
	default:
		return capture
	}
}
