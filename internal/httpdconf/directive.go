package httpdconf

import "strings"

// parseDirectiveLine parses one already-trimmed, already-continuation-joined
// config line known to start with directiveName, filling entry. ok is false
// when the directive's arguments don't form a usable entry.
func parseDirectiveLine(line, directiveName, configFile string, lineNumber int) (ConfigEntry, bool) {
	entry := ConfigEntry{ConfigFile: configFile, LineNumber: lineNumber}

	rest := line[len(directiveName):]
	tokens := tokenizeLine(rest)
	if len(tokens) == 0 {
		return ConfigEntry{}, false
	}

	switch directiveName {
	case "LogFormat":
		entry.LogType = "access"
		entry.FormatString = tokens[0]
		if len(tokens) >= 2 && !strings.Contains(tokens[1], "=") {
			entry.Nickname = tokens[1]
			entry.FormatType = "named"
		} else {
			entry.FormatType = "default"
		}
		return entry, true

	case "CustomLog":
		entry.LogType = "access"
		if len(tokens) < 2 {
			return ConfigEntry{}, false
		}
		if !secondArgWasQuoted(line) {
			// A bare nickname reference defines nothing new.
			return ConfigEntry{}, false
		}
		entry.FormatString = tokens[1]
		entry.FormatType = "inline"
		return entry, true

	case "ErrorLogFormat":
		entry.LogType = "error"
		entry.FormatString = tokens[0]
		entry.FormatType = "default"
		return entry, true

	default:
		return ConfigEntry{}, false
	}
}

// secondArgWasQuoted reports whether CustomLog's second argument was quoted
// in the original line, i.e. an inline format string rather than a nickname
// reference: skip the directive name and the log path (quoted or bare), then
// check whether the token immediately following it is itself quoted.
func secondArgWasQuoted(line string) bool {
	pathEnd := strings.IndexAny(line, " \t") // end of the directive name
	if pathEnd < 0 {
		return false
	}
	for pathEnd < len(line) && (line[pathEnd] == ' ' || line[pathEnd] == '\t') {
		pathEnd++
	}

	if pathEnd < len(line) && line[pathEnd] == '"' {
		pathEnd++
		for pathEnd < len(line) && !(line[pathEnd] == '"' && line[pathEnd-1] != '\\') {
			pathEnd++
		}
		pathEnd++ // past closing quote
	} else {
		for pathEnd < len(line) && line[pathEnd] != ' ' && line[pathEnd] != '\t' {
			pathEnd++
		}
	}

	for pathEnd < len(line) && (line[pathEnd] == ' ' || line[pathEnd] == '\t') {
		pathEnd++
	}
	return pathEnd < len(line) && line[pathEnd] == '"'
}
