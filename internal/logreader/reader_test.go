package logreader

import (
	"strings"
	"testing"
)

func TestReadLineBasic(t *testing.T) {
	r := New(strings.NewReader("one\ntwo\r\nthree"))
	var want = []string{"one", "two", "three"}

	var buf []byte
	for i, w := range want {
		line, ok, err := r.ReadLine(buf)
		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("line %d: ok=false, want true", i)
		}
		if string(line) != w {
			t.Errorf("line %d = %q, want %q", i, line, w)
		}
		buf = line
	}

	_, ok, err := r.ReadLine(buf)
	if err != nil {
		t.Fatalf("final read: %v", err)
	}
	if ok {
		t.Errorf("expected ok=false at EOF")
	}
}

func TestReadLineEmptyInput(t *testing.T) {
	r := New(strings.NewReader(""))
	_, ok, err := r.ReadLine(nil)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if ok {
		t.Errorf("expected ok=false for empty input")
	}
}

func TestReadLineTrailingNewline(t *testing.T) {
	r := New(strings.NewReader("a\nb\n"))
	var got []string
	var buf []byte
	for {
		line, ok, err := r.ReadLine(buf)
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, string(line))
		buf = line
	}
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("got %v, want [a b]", got)
	}
}
