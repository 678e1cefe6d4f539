// Package httpdconf is a minimal httpd.conf reader: just enough directive
// recognition to recover LogFormat/CustomLog/ErrorLogFormat declarations.
package httpdconf

// ConfigEntry is one recognized directive occurrence.
type ConfigEntry struct {
	LogType      string // "access" or "error"
	FormatType   string // "named", "default", "inline"
	Nickname     string // empty when not present
	FormatString string // empty when not present
	ConfigFile   string
	LineNumber   int
}
