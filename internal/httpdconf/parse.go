package httpdconf

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ParseConfigFile reads an httpd.conf-style file and returns every
// recognized LogFormat/CustomLog/ErrorLogFormat entry. ErrorLog lines are
// consumed from the stream but never produce an entry. open defaults to
// os.Open; callers supply their own to read from an archive, a VFS, or a
// test fixture.
func ParseConfigFile(path string, open func(string) (io.ReadCloser, error)) ([]ConfigEntry, error) {
	if open == nil {
		open = func(p string) (io.ReadCloser, error) { return os.Open(p) }
	}

	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []ConfigEntry

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	var continued strings.Builder
	continuedStart := 0

	flushContinuation := func() {
		line := continued.String()
		continued.Reset()
		if entry, ok := classifyAndParse(line, path, continuedStart); ok {
			entries = append(entries, entry)
		}
	}

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if continued.Len() == 0 {
			continuedStart = lineNumber
		} else {
			continued.WriteByte(' ')
		}
		continued.WriteString(line)

		joined := continued.String()
		if strings.HasSuffix(joined, "\\") {
			continued.Reset()
			continued.WriteString(strings.TrimSuffix(joined, "\\"))
			continue
		}

		flushContinuation()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// classifyAndParse trims and classifies one fully-joined logical line.
func classifyAndParse(raw, configFile string, lineNumber int) (ConfigEntry, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed[0] == '#' {
		return ConfigEntry{}, false
	}

	upper := strings.ToUpper(trimmed)
	switch {
	case hasDirective(upper, "LOGFORMAT"):
		return parseDirectiveLine(trimmed, "LogFormat", configFile, lineNumber)
	case hasDirective(upper, "CUSTOMLOG"):
		return parseDirectiveLine(trimmed, "CustomLog", configFile, lineNumber)
	case hasDirective(upper, "ERRORLOGFORMAT"):
		return parseDirectiveLine(trimmed, "ErrorLogFormat", configFile, lineNumber)
	case hasDirective(upper, "ERRORLOG"):
		// Recognized and consumed; produces no entry.
		return ConfigEntry{}, false
	default:
		return ConfigEntry{}, false
	}
}

func hasDirective(upper, name string) bool {
	if !strings.HasPrefix(upper, name) {
		return false
	}
	rest := upper[len(name):]
	return strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t")
}
