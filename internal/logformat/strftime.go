package logformat

import "strings"

// strftimeToRegex translates the supported strftime subset into a
// regex fragment, escaping literal characters and passing unknown
// specifiers through as "\S+" (matched but not interpreted by the value
// parser).
func strftimeToRegex(format string) string {
	var b strings.Builder
	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			writeEscapedRegexRune(&b, c)
			i++
			continue
		}
		spec := format[i+1]
		frag, width := strftimeSpecRegex(format, i+1)
		b.WriteString(frag)
		i += 2 + width
		_ = spec
	}
	return b.String()
}

// strftimeSpecRegex returns the regex fragment for the specifier starting at
// format[pos] (pos points just past '%'), and how many *extra* characters
// beyond the 2-char "%X" it consumed (used for "%-m"-style GNU modifiers).
func strftimeSpecRegex(format string, pos int) (string, int) {
	c := format[pos]
	if c == '-' && pos+1 < len(format) {
		switch format[pos+1] {
		case 'm', 'd', 'H', 'I':
			return `\d{1,2}`, 1
		}
	}
	switch c {
	case 'Y':
		return `\d{4}`, 0
	case 'y':
		return `\d{2}`, 0
	case 'm':
		return `\d{2}`, 0
	case 'd':
		return `\d{2}`, 0
	case 'e':
		return ` ?\d{1,2}`, 0
	case 'b', 'h':
		return `[A-Za-z]{3}`, 0
	case 'B':
		return `[A-Za-z]+`, 0
	case 'H':
		return `\d{2}`, 0
	case 'I':
		return `\d{2}`, 0
	case 'M':
		return `\d{2}`, 0
	case 'S':
		return `\d{2}`, 0
	case 'f':
		return `\d+`, 0
	case 'z':
		return `[+-]\d{4}`, 0
	case 'Z':
		return `[A-Za-z]+`, 0
	case 'T':
		return `\d{2}:\d{2}:\d{2}`, 0
	case 'R':
		return `\d{2}:\d{2}`, 0
	case 'j':
		return `\d{3}`, 0
	case 'a':
		return `[A-Za-z]{3}`, 0
	case 'A':
		return `[A-Za-z]+`, 0
	case 'p', 'P':
		return `(?:AM|PM|am|pm)`, 0
	case 'n':
		return `\n`, 0
	case 't':
		return `\t`, 0
	case '%':
		return `%`, 0
	default:
		return `\S+`, 0
	}
}

func writeEscapedRegexRune(b *strings.Builder, c byte) {
	switch c {
	case '.', '*', '+', '?', '^', '$', '(', ')', '{', '}', '|', '\\', '[', ']':
		b.WriteByte('\\')
	}
	b.WriteByte(c)
}
