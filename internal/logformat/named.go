package logformat

// Named built-in formats callers can select without supplying a raw
// LogFormat string.
const (
	CommonFormat   = `%h %l %u %t "%r" %>s %b`
	CombinedFormat = `%h %l %u %t "%r" %>s %b "%{Referer}i" "%{User-agent}i"`
)
