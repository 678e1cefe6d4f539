// Package logformat compiles an Apache LogFormat string into a typed field
// schema and a matching regular expression.
package logformat

import (
	"regexp"

	"github.com/saygox/duckdb-httpd-log/internal/directive"
)

// TimestampType classifies how a %t field's value is represented in the log line.
type TimestampType int

const (
	TimestampApacheDefault TimestampType = iota
	TimestampEpochSec
	TimestampEpochMsec
	TimestampEpochUsec
	TimestampFracMsec
	TimestampFracUsec
	TimestampStrftime
)

// FormatField is one directive occurrence in a compiled format.
type FormatField struct {
	Directive string // canonical form, e.g. "%h", "%>s", "%i"
	Modifier  string
	IsQuoted  bool

	ColumnName string
	Type       directive.Type
	ShouldSkip bool

	// %r decomposition overrides.
	SkipMethod      bool
	SkipPath        bool
	SkipQueryString bool
	SkipProtocol    bool

	// %t metadata.
	TimestampType     TimestampType
	StrftimeFormat    string
	IsEndTimestamp    bool
	TimestampGroupID  int // 1-based; 0 means "not part of a group"

	// %T/%D duration precision, used only during collision resolution.
	durationPrecision int

	// span into the original format string this field consumed, used by
	// the regex-emission walk to stay in lockstep with tokenization.
	start, end int
}

// TimestampGroup is a maximal run of consecutive same-polarity %t fields.
type TimestampGroup struct {
	FieldIndices []int // indices into ParsedFormat.Fields, in format order
	IsEnd        bool
	Leader       int // index into ParsedFormat.Fields of the group's leader
}

// ParsedFormat is the immutable result of compiling a LogFormat string.
type ParsedFormat struct {
	Original    string
	Fields      []FormatField
	Groups      []TimestampGroup
	RegexSource string
	Regex       *regexp.Regexp
}
