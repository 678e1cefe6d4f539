package logformat

import "testing"

func TestCompileCommonFormat(t *testing.T) {
	pf, err := Compile(CommonFormat)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	line := `127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326`
	m := pf.Regex.FindStringSubmatch(line)
	if m == nil {
		t.Fatalf("regex %q did not match %q", pf.RegexSource, line)
	}

	cols := pf.Schema(false)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	want := []string{"client_ip", "ident", "auth_user", "timestamp", "method", "path", "query_string", "protocol", "status", "bytes"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCompileCombinedFormat(t *testing.T) {
	pf, err := Compile(CombinedFormat)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	line := `127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326 "http://example.com/" "Mozilla/5.0"`
	if pf.Regex.FindStringSubmatch(line) == nil {
		t.Fatalf("regex %q did not match %q", pf.RegexSource, line)
	}

	cols := pf.Schema(false)
	last := cols[len(cols)-1]
	if last.Name != "user_agent" {
		t.Errorf("last column = %q, want user_agent", last.Name)
	}
}

func TestCompileStatusCollision(t *testing.T) {
	pf, err := Compile(`%s %>s`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	cols := pf.Schema(false)
	names := map[string]bool{}
	for _, c := range cols {
		names[c.Name] = true
	}
	if !names["status"] || !names["status_original"] {
		t.Errorf("cols = %+v, want status and status_original", cols)
	}
}

func TestCompileRawModeAddsTimestampRawColumn(t *testing.T) {
	pf, err := Compile(`%t`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	cols := pf.Schema(true)
	if len(cols) != 2 || cols[0].Name != "timestamp" || cols[1].Name != "timestamp_raw" {
		t.Fatalf("cols = %+v", cols)
	}
}

func TestCompileRequestLineSkipFlags(t *testing.T) {
	pf, err := Compile(`%m %U %r`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	cols := pf.Schema(false)
	// %m and %U are already present, so the %r expansion should skip those
	// sub-columns and only contribute query_string/protocol.
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	for _, n := range []string{"method", "path", "query_string", "protocol"} {
		found := false
		for _, got := range names {
			if got == n {
				found = true
			}
		}
		if !found {
			t.Errorf("names = %v, missing %q", names, n)
		}
	}
}

func TestCompileEmptyFormat(t *testing.T) {
	// A bare '%' at end of string with no directive letter should still
	// tokenize (literal passthrough) rather than error; this test instead
	// exercises the empty-format edge case compiling to a matchable regex.
	pf, err := Compile(``)
	if err != nil {
		t.Fatalf("Compile(empty): %v", err)
	}
	if pf.Regex == nil {
		t.Fatal("expected a non-nil compiled regex for an empty format")
	}
}
