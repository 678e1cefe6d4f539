package directive

import "testing"

func TestLookupKnownDirective(t *testing.T) {
	def, ok := Lookup("%h")
	if !ok {
		t.Fatal("expected %h to be found")
	}
	if def.DefaultColumn != "client_ip" || def.Type != TypeText {
		t.Errorf("def = %+v", def)
	}
}

func TestLookupUnknownDirective(t *testing.T) {
	if _, ok := Lookup("%nope"); ok {
		t.Error("expected an unknown directive to be absent")
	}
}

func TestColumnNameSpecialCases(t *testing.T) {
	cases := []struct {
		dir, mod, want string
	}{
		{"%a", "c", "peer_ip"},
		{"%h", "c", "peer_host"},
		{"%P", "tid", "thread_id"},
		{"%p", "canonical", "server_port"},
		{"%p", "local", "local_port"},
		{"%T", "", "duration"},
		{"%D", "", "duration"},
		{"%<T", "", "duration_original"},
		{"%i", "User-Agent", "user_agent"},
		{"%o", "Content-Type", "content_type"},
	}
	for _, c := range cases {
		if got := ColumnName(c.dir, c.mod); got != c.want {
			t.Errorf("ColumnName(%q, %q) = %q, want %q", c.dir, c.mod, got, c.want)
		}
	}
}

func TestColumnNameFallback(t *testing.T) {
	if got := ColumnName("%Z", ""); got != "field_Z" {
		t.Errorf("ColumnName(%%Z) = %q, want field_Z", got)
	}
}

func TestColumnTypeTypedHeaders(t *testing.T) {
	if got := ColumnType("%i", "Content-Length"); got != TypeInt64 {
		t.Errorf("ColumnType(%%i, Content-Length) = %v, want int64", got)
	}
	if got := ColumnType("%o", "Age"); got != TypeInt32 {
		t.Errorf("ColumnType(%%o, Age) = %v, want int32", got)
	}
	if got := ColumnType("%i", "X-Custom"); got != TypeText {
		t.Errorf("ColumnType(%%i, X-Custom) = %v, want text", got)
	}
}

func TestColumnTypeDuration(t *testing.T) {
	for _, dir := range []string{"%T", "%>T", "%<T", "%D", "%>D", "%<D"} {
		if got := ColumnType(dir, ""); got != TypeInterval {
			t.Errorf("ColumnType(%s) = %v, want interval", dir, got)
		}
	}
}

func TestCollisionPartners(t *testing.T) {
	partners := CollisionPartners("bytes")
	if len(partners) != 2 {
		t.Fatalf("len(partners) = %d, want 2: %+v", len(partners), partners)
	}
}

func TestTypeString(t *testing.T) {
	cases := map[Type]string{
		TypeText:      "text",
		TypeInt32:     "int32",
		TypeInt64:     "int64",
		TypeTimestamp: "timestamp",
		TypeInterval:  "interval",
		TypeBool:      "bool",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
