package logformat

import (
	"fmt"
	"regexp"
)

// Compile tokenizes an Apache LogFormat string and produces a ParsedFormat:
// an ordered field schema, timestamp groups, and a compiled regex. The only
// fatal error is ErrInvalidFormat, raised when the emitted pattern itself
// fails to compile.
func Compile(format string) (*ParsedFormat, error) {
	fields := tokenize(format)
	reconcileRequestLine(fields)
	groups := groupTimestamps(fields)
	resolveCollisions(fields)

	source := emitRegex(format, fields)
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, source, err)
	}

	return &ParsedFormat{
		Original:    format,
		Fields:      fields,
		Groups:      groups,
		RegexSource: source,
		Regex:       re,
	}, nil
}
