package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTempLog(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "access.log")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestBindCommonAndScanFile(t *testing.T) {
	path := writeTempLog(t, `127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /a HTTP/1.0" 200 2326
malformed line
127.0.0.1 - - [10/Oct/2000:13:55:37 -0700] "GET /b HTTP/1.0" 404 -
`)

	b, err := Bind(Options{Paths: []string{path}, FormatType: "common"})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer b.Close()

	var rows []Row
	err = b.ScanFile(context.Background(), path, nil, func(r Row) error {
		rows = append(rows, r)
		return nil
	})
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (malformed line silently skipped)", len(rows))
	}

	cols := b.Columns()
	logFileIdx := -1
	for i, c := range cols {
		if c.Name == "log_file" {
			logFileIdx = i
		}
	}
	if logFileIdx < 0 {
		t.Fatalf("no log_file column in %+v", cols)
	}
	if rows[0].Values[logFileIdx] != path {
		t.Errorf("log_file = %v, want %v", rows[0].Values[logFileIdx], path)
	}
}

func TestBindRawModeEmitsParseErrorRows(t *testing.T) {
	path := writeTempLog(t, "not a valid line\n")

	b, err := Bind(Options{Paths: []string{path}, FormatType: "common", Raw: true})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer b.Close()

	var rows []Row
	err = b.ScanFile(context.Background(), path, nil, func(r Row) error {
		rows = append(rows, r)
		return nil
	})
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	cols := b.Columns()
	var parseErrorIdx, rawLineIdx int
	for i, c := range cols {
		switch c.Name {
		case "parse_error":
			parseErrorIdx = i
		case "raw_line":
			rawLineIdx = i
		}
	}
	if rows[0].Values[parseErrorIdx] != true {
		t.Errorf("parse_error = %v, want true", rows[0].Values[parseErrorIdx])
	}
	if rows[0].Values[rawLineIdx] != "not a valid line" {
		t.Errorf("raw_line = %v", rows[0].Values[rawLineIdx])
	}
}

func TestBindInvalidFormatType(t *testing.T) {
	path := writeTempLog(t, "x\n")
	_, err := Bind(Options{Paths: []string{path}, FormatType: "nope"})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestScanFilesMultipleFiles(t *testing.T) {
	p1 := writeTempLog(t, `127.0.0.1 - - [10/Oct/2000:13:55:36 -0700] "GET /a HTTP/1.0" 200 10`+"\n")
	p2 := writeTempLog(t, `127.0.0.1 - - [10/Oct/2000:13:55:37 -0700] "GET /b HTTP/1.0" 200 20`+"\n")

	b, err := Bind(Options{Paths: []string{p1}, FormatType: "common"})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer b.Close()

	st := NewState()
	count := 0
	err = b.ScanFiles(context.Background(), []string{p1, p2}, st, func(r Row) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("ScanFiles: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if !st.Initialized() || !st.Finished() {
		t.Errorf("state = %+v, want initialized and finished", st)
	}
}
