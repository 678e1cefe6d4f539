package logformat

import "strings"

// emitRegex walks the original format string in lockstep with the already
// tokenized field list and produces the matching regex source.
func emitRegex(format string, fields []FormatField) string {
	var b strings.Builder
	b.WriteByte('^')

	pos := 0
	n := len(format)
	fieldIdx := 0

	for pos < n {
		if fieldIdx < len(fields) && pos == fields[fieldIdx].start {
			b.WriteString(captureExpr(fields[fieldIdx]))
			pos = fields[fieldIdx].end
			fieldIdx++
			continue
		}

		c := format[pos]
		switch {
		case c == '"':
			b.WriteString(`\"`)
			pos++
		case c == ' ' || c == '\t':
			b.WriteString(`\s+`)
			pos++
			for pos < n && (format[pos] == ' ' || format[pos] == '\t') {
				pos++
			}
		default:
			writeEscapedRegexRune(&b, c)
			pos++
		}
	}

	return b.String()
}

// captureExpr returns the regex fragment for one field, including its
// wrapping parens (capturing "(...)" or non-capturing "(?:...)").
func captureExpr(f FormatField) string {
	capturing := !f.ShouldSkip || f.TimestampGroupID != 0

	var core string
	switch {
	case f.IsQuoted:
		core = `[^"]*`
	case f.Directive == "%t":
		switch f.TimestampType {
		case TimestampApacheDefault:
			// Always capturing: the bracket pair is part of the directive's
			// own output, not format-string literals.
			return `\[([^\]]+)\]`
		case TimestampEpochSec, TimestampEpochMsec, TimestampEpochUsec:
			core = `\d+`
		case TimestampFracMsec:
			core = `\d{3}`
		case TimestampFracUsec:
			core = `\d{6}`
		case TimestampStrftime:
			core = strftimeToRegex(f.StrftimeFormat)
		default:
			core = `\S+`
		}
	default:
		core = `\S+`
	}

	if capturing {
		return "(" + core + ")"
	}
	return "(?:" + core + ")"
}
