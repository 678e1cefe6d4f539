package httpdconf

import (
	"io"
	"strings"
	"testing"
)

func openString(contents string) func(string) (io.ReadCloser, error) {
	return func(string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(contents)), nil
	}
}

func TestParseConfigFileNamedAndCustomLog(t *testing.T) {
	conf := `
# sample vhost
LogFormat "%h %l %u %t \"%r\" %>s %b" common
CustomLog logs/access_log common
CustomLog "logs/access_log" "%h %l %u %t \"%r\" %>s %b \"%{Referer}i\""
ErrorLogFormat "[%t] [%l] %M"
ErrorLog logs/error_log
`
	entries, err := ParseConfigFile("httpd.conf", openString(conf))
	if err != nil {
		t.Fatalf("ParseConfigFile: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3: %+v", len(entries), entries)
	}

	if entries[0].FormatType != "named" || entries[0].Nickname != "common" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].FormatType != "inline" || entries[1].FormatString == "" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[2].LogType != "error" || entries[2].FormatType != "default" {
		t.Errorf("entries[2] = %+v", entries[2])
	}
}

func TestParseConfigFileLineContinuation(t *testing.T) {
	conf := "LogFormat \"%h %l %u \\\n%t\" mixed\n"
	entries, err := ParseConfigFile("httpd.conf", openString(conf))
	if err != nil {
		t.Fatalf("ParseConfigFile: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].LineNumber != 1 {
		t.Errorf("LineNumber = %d, want 1 (the continuation's first line)", entries[0].LineNumber)
	}
}

func TestParseConfigFileSkipsBareNicknameCustomLog(t *testing.T) {
	conf := `CustomLog logs/access_log common`
	entries, err := ParseConfigFile("httpd.conf", openString(conf))
	if err != nil {
		t.Fatalf("ParseConfigFile: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0 (bare nickname reference defines nothing)", len(entries))
	}
}
