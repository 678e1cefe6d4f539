package logextract

import (
	"strconv"
	"strings"
	"time"

	"github.com/saygox/duckdb-httpd-log/internal/logformat"
)

func convertInt32(f *logformat.FormatField, capture string) any {
	if capture == "-" {
		return nil
	}
	v, err := strconv.ParseInt(capture, 10, 32)
	if err != nil {
		return nil
	}
	return int32(v)
}

func convertInt64(f *logformat.FormatField, capture string) any {
	if capture == "-" {
		if isNamedByteColumn(f.ColumnName) {
			return int64(0)
		}
		return nil
	}
	v, err := strconv.ParseInt(capture, 10, 64)
	if err != nil {
		return nil
	}
	return v
}

// convertDuration scales %T/%D captures to interval microseconds.
func convertDuration(f *logformat.FormatField, capture string) any {
	if capture == "-" {
		return nil
	}
	v, err := strconv.ParseInt(capture, 10, 64)
	if err != nil {
		return nil
	}

	switch f.Directive {
	case "%D", "%>D", "%<D":
		return v // already microseconds
	}

	switch f.Modifier {
	case "us":
		return v
	case "ms":
		return v * 1_000
	default: // "s" or blank
		return v * 1_000_000
	}
}

// extractRequestLine decomposes a %r/%>r/%<r capture into method/path/query/
// protocol sub-values, honoring the field's skip_* flags, in the same order
// as logformat.ParsedFormat.Schema emits the sub-columns.
func extractRequestLine(capture string, f *logformat.FormatField) []any {
	method, path, query, protocol := splitRequestLine(capture)

	var out []any
	if !f.SkipMethod {
		out = append(out, method)
	}
	if !f.SkipPath {
		out = append(out, path)
	}
	if !f.SkipQueryString {
		out = append(out, query)
	}
	if !f.SkipProtocol {
		out = append(out, protocol)
	}
	return out
}

func splitRequestLine(capture string) (method, path string, query any, protocol string) {
	parts := strings.Split(capture, " ")
	if len(parts) < 3 {
		return "", "", nil, ""
	}

	method = parts[0]
	protocol = parts[len(parts)-1]
	rest := strings.Join(parts[1:len(parts)-1], " ")

	if qIdx := strings.IndexByte(rest, '?'); qIdx >= 0 {
		path = rest[:qIdx]
		q := rest[qIdx+1:]
		if q == "" {
			query = nil
		} else {
			query = q
		}
	} else {
		path = rest
		query = nil
	}
	return method, path, query, protocol
}

// combineTimestampGroup consumes the capture slots belonging to the
// timestamp group led by leaderIdx and produces its combined time.Time value
// (nil if no component supplied a base) plus the raw space-joined captures
// for the "_raw" companion column. A lone "%z" component never supplies a
// base, and a base set by one component is never overwritten by a later one
// in the same group.
func combineTimestampGroup(pf *logformat.ParsedFormat, captures []string, captureIdx *int, leaderIdx int) (any, string) {
	var group *logformat.TimestampGroup
	for i := range pf.Groups {
		if pf.Groups[i].Leader == leaderIdx {
			group = &pf.Groups[i]
			break
		}
	}
	if group == nil {
		return nil, ""
	}

	var rawParts []string
	var baseMicros int64
	baseSet := false

	for _, idx := range group.FieldIndices {
		f := pf.Fields[idx]
		capture := captures[*captureIdx]
		*captureIdx++
		rawParts = append(rawParts, capture)

		switch f.TimestampType {
		case logformat.TimestampApacheDefault:
			if !baseSet {
				if t, err := time.Parse("02/Jan/2006:15:04:05 -0700", capture); err == nil {
					baseMicros = t.UnixMicro()
					baseSet = true
				}
			}
		case logformat.TimestampEpochSec:
			if !baseSet {
				if v, err := strconv.ParseInt(capture, 10, 64); err == nil {
					baseMicros = v * 1_000_000
					baseSet = true
				}
			}
		case logformat.TimestampEpochMsec:
			if !baseSet {
				if v, err := strconv.ParseInt(capture, 10, 64); err == nil {
					baseMicros = v * 1_000
					baseSet = true
				}
			}
		case logformat.TimestampEpochUsec:
			if !baseSet {
				if v, err := strconv.ParseInt(capture, 10, 64); err == nil {
					baseMicros = v
					baseSet = true
				}
			}
		case logformat.TimestampFracMsec:
			if v, err := strconv.ParseInt(capture, 10, 64); err == nil {
				baseMicros += v * 1_000
			}
		case logformat.TimestampFracUsec:
			if v, err := strconv.ParseInt(capture, 10, 64); err == nil {
				baseMicros += v
			}
		case logformat.TimestampStrftime:
			if f.StrftimeFormat == "%z" {
				continue // lone %z never supplies a base
			}
			if !baseSet {
				if layout, ok := strftimeToGoLayout(f.StrftimeFormat); ok {
					if t, err := time.Parse(layout, capture); err == nil {
						baseMicros = t.UnixMicro()
						baseSet = true
					}
				}
			}
		}
	}

	raw := strings.Join(rawParts, " ")
	if !baseSet {
		return nil, raw
	}
	return time.UnixMicro(baseMicros).UTC(), raw
}

// strftimeToGoLayout translates the strftime subset into a Go
// reference-time layout, reporting ok=false for specifiers with no direct
// Go layout equivalent (the caller then treats the component as non-base-
// supplying rather than guessing).
func strftimeToGoLayout(format string) (string, bool) {
	var b strings.Builder
	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			i++
			continue
		}
		spec := format[i+1]
		switch spec {
		case 'Y':
			b.WriteString("2006")
		case 'y':
			b.WriteString("06")
		case 'm':
			b.WriteString("01")
		case 'd':
			b.WriteString("02")
		case 'e':
			b.WriteString("_2")
		case 'H':
			b.WriteString("15")
		case 'I':
			b.WriteString("03")
		case 'M':
			b.WriteString("04")
		case 'S':
			b.WriteString("05")
		case 'b', 'h':
			b.WriteString("Jan")
		case 'B':
			b.WriteString("January")
		case 'z':
			b.WriteString("-0700")
		case 'Z':
			b.WriteString("MST")
		case 'p', 'P':
			b.WriteString("PM")
		case 'T':
			b.WriteString("15:04:05")
		case 'R':
			b.WriteString("15:04")
		case '%':
			b.WriteByte('%')
		default:
			return "", false
		}
		i += 2
	}
	return b.String(), true
}
