// Package directive holds the static Apache LogFormat directive catalog and
// the column-naming/typing rules derived from it.
package directive

import (
	"strings"
	"sync"
)

// Type is the logical column type a directive resolves to.
type Type int

const (
	TypeText Type = iota
	TypeInt32
	TypeInt64
	TypeTimestamp
	TypeInterval
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeTimestamp:
		return "timestamp"
	case TypeInterval:
		return "interval"
	case TypeBool:
		return "bool"
	default:
		return "text"
	}
}

// Definition is one row of the static directive catalog.
type Definition struct {
	Directive        string
	DefaultColumn    string // empty for dynamic-name directives (%i, %o, %C, ...)
	Type             Type
	CollisionSuffix  string // appended to losers of a cross-directive collision
	CollisionPriority int   // lower wins the base column name within its class
	CollisionClass   string // equivalence class key; "" means no collision partner
}

// TypedHeaderRule upgrades a %{H}i / %{H}o column from text to a numeric type.
type TypedHeaderRule struct {
	HeaderLower      string
	Type             Type
	AppliesToRequest bool // %{H}i
	AppliesToResponse bool // %{H}o
}

// catalog is the process-lifetime directive table. Canonical directive
// strings use the same spellings the compiler emits: "%>s", "%<s", "%>r",
// "%<r", "%>U", "%<U", "%>T", "%<T", "%>D", "%<D".
var catalog = []Definition{
	{Directive: "%h", DefaultColumn: "client_ip", Type: TypeText},
	{Directive: "%a", DefaultColumn: "peer_ip", Type: TypeText},
	{Directive: "%A", DefaultColumn: "local_ip", Type: TypeText},
	{Directive: "%l", DefaultColumn: "ident", Type: TypeText},
	{Directive: "%u", DefaultColumn: "auth_user", Type: TypeText},
	{Directive: "%t", DefaultColumn: "timestamp", Type: TypeTimestamp},
	{Directive: "%r", DefaultColumn: "request", Type: TypeText},
	{Directive: "%>r", DefaultColumn: "request", Type: TypeText},
	{Directive: "%<r", DefaultColumn: "request_original", Type: TypeText},

	// status collision class: %s (original hop, shorthand for %<s) vs %>s (final hop, default).
	{Directive: "%s", DefaultColumn: "status", Type: TypeInt32, CollisionClass: "status", CollisionSuffix: "_original", CollisionPriority: 1},
	{Directive: "%>s", DefaultColumn: "status", Type: TypeInt32, CollisionClass: "status", CollisionSuffix: "_original", CollisionPriority: 0},
	{Directive: "%<s", DefaultColumn: "status_original", Type: TypeInt32},

	// bytes collision class: %b (CLF, "-" on zero) and %B (always numeric) name the same column.
	{Directive: "%b", DefaultColumn: "bytes", Type: TypeInt64, CollisionClass: "bytes", CollisionSuffix: "_clf", CollisionPriority: 0},
	{Directive: "%B", DefaultColumn: "bytes", Type: TypeInt64, CollisionClass: "bytes", CollisionSuffix: "_clf", CollisionPriority: 1},

	{Directive: "%m", DefaultColumn: "method", Type: TypeText},
	{Directive: "%U", DefaultColumn: "path", Type: TypeText},
	{Directive: "%>U", DefaultColumn: "path", Type: TypeText},
	{Directive: "%<U", DefaultColumn: "path_original", Type: TypeText},
	{Directive: "%q", DefaultColumn: "query_string", Type: TypeText},
	{Directive: "%H", DefaultColumn: "protocol", Type: TypeText},

	{Directive: "%v", DefaultColumn: "server_name", Type: TypeText, CollisionClass: "server_name", CollisionSuffix: "_alt", CollisionPriority: 0},
	{Directive: "%V", DefaultColumn: "server_name", Type: TypeText, CollisionClass: "server_name", CollisionSuffix: "_alt", CollisionPriority: 1},

	// process id / server port: bare form wins over its equivalent %{...}P / %{...}p modifier form.
	{Directive: "%P", DefaultColumn: "process_id", Type: TypeInt32, CollisionClass: "process_id", CollisionSuffix: "_mod", CollisionPriority: 0},
	{Directive: "%p", DefaultColumn: "server_port", Type: TypeInt32, CollisionClass: "server_port", CollisionSuffix: "_mod", CollisionPriority: 0},

	{Directive: "%T", DefaultColumn: "duration", Type: TypeInterval, CollisionClass: "duration", CollisionPriority: 3},
	{Directive: "%>T", DefaultColumn: "duration", Type: TypeInterval, CollisionClass: "duration", CollisionPriority: 2},
	{Directive: "%<T", DefaultColumn: "duration_original", Type: TypeInterval, CollisionClass: "duration_original", CollisionPriority: 1},
	{Directive: "%D", DefaultColumn: "duration", Type: TypeInterval, CollisionClass: "duration", CollisionPriority: 1},
	{Directive: "%>D", DefaultColumn: "duration", Type: TypeInterval, CollisionClass: "duration", CollisionPriority: 0},
	{Directive: "%<D", DefaultColumn: "duration_original", Type: TypeInterval, CollisionClass: "duration_original", CollisionPriority: 0},

	{Directive: "%k", DefaultColumn: "keepalive_requests", Type: TypeInt32},
	{Directive: "%L", DefaultColumn: "log_id", Type: TypeText},
	{Directive: "%n", DefaultColumn: "", Type: TypeText}, // dynamic, via modifier
	{Directive: "%i", DefaultColumn: "", Type: TypeText}, // dynamic, via modifier + typed-header rule
	{Directive: "%o", DefaultColumn: "", Type: TypeText}, // dynamic, via modifier + typed-header rule
	{Directive: "%C", DefaultColumn: "", Type: TypeText}, // dynamic, via modifier
	{Directive: "%e", DefaultColumn: "", Type: TypeText}, // dynamic, via modifier
	{Directive: "%X", DefaultColumn: "connection_status", Type: TypeText},
	{Directive: "%^ti", DefaultColumn: "trailer_in", Type: TypeText},
	{Directive: "%^to", DefaultColumn: "trailer_out", Type: TypeText},
}

var typedHeaders = []TypedHeaderRule{
	{HeaderLower: "content-length", Type: TypeInt64, AppliesToRequest: true, AppliesToResponse: true},
	{HeaderLower: "age", Type: TypeInt32, AppliesToResponse: true},
}

var (
	byDirective     map[string]Definition
	byHeader        map[string]TypedHeaderRule
	initLookups     sync.Once
)

func ensureLookups() {
	initLookups.Do(func() {
		byDirective = make(map[string]Definition, len(catalog))
		for _, d := range catalog {
			byDirective[d.Directive] = d
		}
		byHeader = make(map[string]TypedHeaderRule, len(typedHeaders))
		for _, h := range typedHeaders {
			byHeader[h.HeaderLower] = h
		}
	})
}

// Lookup returns the catalog entry for a canonical directive string, if any.
func Lookup(dir string) (Definition, bool) {
	ensureLookups()
	d, ok := byDirective[dir]
	return d, ok
}

// LookupHeader returns the typed-header rule for a lowercased header name.
func LookupHeader(headerLower string) (TypedHeaderRule, bool) {
	ensureLookups()
	h, ok := byHeader[headerLower]
	return h, ok
}

// CollisionPartners returns every catalog entry sharing a non-empty collision class.
func CollisionPartners(class string) []Definition {
	ensureLookups()
	if class == "" {
		return nil
	}
	var out []Definition
	for _, d := range catalog {
		if d.CollisionClass == class {
			out = append(out, d)
		}
	}
	return out
}

// ColumnName resolves the default column name for a directive occurrence,
// applying the modifier-based special cases first before falling back to
// the catalog default.
func ColumnName(dir, modifier string) string {
	switch dir {
	case "%a":
		if modifier == "c" {
			return "peer_ip"
		}
	case "%h":
		if modifier == "c" {
			return "peer_host"
		}
	case "%P":
		switch modifier {
		case "", "pid":
			return "process_id"
		case "tid":
			return "thread_id"
		case "hextid":
			return "thread_id_hex"
		}
	case "%p":
		switch modifier {
		case "", "canonical":
			return "server_port"
		case "local":
			return "local_port"
		case "remote":
			return "remote_port"
		}
	case "%T", "%>T", "%D", "%>D":
		return "duration"
	case "%<T", "%<D":
		return "duration_original"
	case "%i", "%o", "%C", "%e", "%n":
		if modifier != "" {
			return lowerDash(modifier)
		}
	case "%^ti":
		if modifier != "" {
			return lowerDash(modifier)
		}
	case "%^to":
		if modifier != "" {
			return lowerDash(modifier)
		}
	}

	if def, ok := Lookup(dir); ok && def.DefaultColumn != "" {
		return def.DefaultColumn
	}

	rest := strings.TrimPrefix(dir, "%")
	return "field_" + rest
}

func lowerDash(s string) string {
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "-", "_")
}

// ColumnType resolves the logical type for a directive occurrence, consulting
// the typed-header catalog first for %i/%o.
func ColumnType(dir, modifier string) Type {
	if dir == "%i" || dir == "%o" {
		headerLower := strings.ToLower(modifier)
		if rule, ok := LookupHeader(headerLower); ok {
			if dir == "%i" && rule.AppliesToRequest {
				return rule.Type
			}
			if dir == "%o" && rule.AppliesToResponse {
				return rule.Type
			}
		}
		return TypeText
	}

	if dir == "%P" {
		switch modifier {
		case "tid":
			return TypeInt64
		case "hextid":
			return TypeText
		default:
			return TypeInt32
		}
	}

	if dir == "%p" {
		return TypeInt32
	}

	if dir == "%T" || dir == "%>T" || dir == "%<T" || dir == "%D" || dir == "%>D" || dir == "%<D" {
		return TypeInterval
	}

	if def, ok := Lookup(dir); ok {
		return def.Type
	}
	return TypeText
}
