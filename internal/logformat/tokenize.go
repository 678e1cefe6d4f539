package logformat

import (
	"strings"

	"github.com/saygox/duckdb-httpd-log/internal/directive"
)

// tokenize walks a LogFormat string and emits one FormatField per directive
// occurrence, in format order, recording each field's [start,end) span in the
// original string so the regex-emission walk (regex.go) can stay in lockstep.
func tokenize(format string) []FormatField {
	var fields []FormatField
	inQuotes := false
	pos := 0
	n := len(format)

	for pos < n {
		c := format[pos]

		if c == '"' {
			inQuotes = !inQuotes
			pos++
			continue
		}

		if c != '%' || pos+1 >= n {
			pos++
			continue
		}

		start := pos
		pos++ // consume '%'

		// Optional status-condition prefix: !? digits (',' digits)*
		pos = skipStatusCondition(format, pos)
		if pos >= n {
			break
		}

		var dirLetters, modifier string
		malformed := false

		if format[pos] == '{' {
			close := strings.IndexByte(format[pos+1:], '}')
			if close < 0 {
				// Malformed %{... with no closing brace: skip the '%' silently.
				malformed = true
			} else {
				closePos := pos + 1 + close
				modifier = format[pos+1 : closePos]
				after := closePos + 1
				if after+1 < n && format[after] == '^' && (format[after+1] == 't') && after+2 < n {
					dirLetters = format[after : after+3] // "^ti" or "^to"
					pos = after + 3
				} else if after < n {
					dirLetters = string(format[after])
					pos = after + 1
				} else {
					malformed = true
				}
			}
		} else if format[pos] == '<' || format[pos] == '>' {
			if pos+1 < n {
				dirLetters = format[pos : pos+2] // e.g. ">s"
				pos += 2
			} else {
				malformed = true
			}
		} else {
			dirLetters = string(format[pos])
			pos++
		}

		if malformed {
			continue
		}

		canonical := "%" + dirLetters
		field := buildField(canonical, modifier, inQuotes)
		field.start, field.end = start, pos
		fields = append(fields, field)
	}

	return fields
}

// skipStatusCondition advances past an optional "!?digits(,digits)*" prefix
// that follows '%'. It is accepted and ignored.
func skipStatusCondition(format string, pos int) int {
	n := len(format)
	p := pos
	if p < n && format[p] == '!' {
		p++
	}
	digitsSeen := false
	for p < n && isDigit(format[p]) {
		p++
		digitsSeen = true
	}
	if !digitsSeen {
		return pos
	}
	for p < n && format[p] == ',' {
		q := p + 1
		sawDigit := false
		for q < n && isDigit(format[q]) {
			q++
			sawDigit = true
		}
		if !sawDigit {
			break
		}
		p = q
	}
	return p
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// buildField resolves naming/typing for one directive occurrence and
// classifies %t timestamp fields.
func buildField(canonical, modifier string, isQuoted bool) FormatField {
	field := FormatField{
		Directive: canonical,
		Modifier:  modifier,
		IsQuoted:  isQuoted,
	}

	if canonical == "%t" {
		classifyTimestamp(&field)
		field.ColumnName = "timestamp"
		field.Type = directive.TypeTimestamp
		return field
	}

	field.ColumnName = directive.ColumnName(canonical, modifier)
	field.Type = directive.ColumnType(canonical, modifier)

	if canonical == "%T" || canonical == "%>T" || canonical == "%D" || canonical == "%>D" {
		field.durationPrecision = durationPrecision(canonical, modifier)
	} else if canonical == "%<T" || canonical == "%<D" {
		field.durationPrecision = durationPrecision(canonical, modifier)
	}

	return field
}

// durationPrecision ranks %T/%D units: microseconds=3, milliseconds=2, seconds=1.
func durationPrecision(canonical, modifier string) int {
	if canonical == "%D" || canonical == "%>D" || canonical == "%<D" {
		return 3
	}
	switch modifier {
	case "us":
		return 3
	case "ms":
		return 2
	default: // "s" or blank
		return 1
	}
}

// classifyTimestamp fills in the TimestampType/StrftimeFormat/IsEndTimestamp
// fields of a %t FormatField from its modifier.
func classifyTimestamp(field *FormatField) {
	modifier := field.Modifier
	if modifier == "" {
		field.TimestampType = TimestampApacheDefault
		return
	}

	rest := modifier
	switch {
	case strings.HasPrefix(rest, "begin:"):
		rest = strings.TrimPrefix(rest, "begin:")
		field.IsEndTimestamp = false
	case strings.HasPrefix(rest, "end:"):
		rest = strings.TrimPrefix(rest, "end:")
		field.IsEndTimestamp = true
	}

	switch rest {
	case "":
		field.TimestampType = TimestampApacheDefault
	case "sec":
		field.TimestampType = TimestampEpochSec
	case "msec":
		field.TimestampType = TimestampEpochMsec
	case "usec":
		field.TimestampType = TimestampEpochUsec
	case "msec_frac":
		field.TimestampType = TimestampFracMsec
	case "usec_frac":
		field.TimestampType = TimestampFracUsec
	default:
		field.TimestampType = TimestampStrftime
		field.StrftimeFormat = rest
	}
}
