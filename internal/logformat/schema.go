package logformat

import "github.com/saygox/duckdb-httpd-log/internal/directive"

// Column is one entry of the format-derived output schema, before the
// log_file/raw-mode metadata columns that internal/scan appends.
type Column struct {
	Name string
	Type directive.Type
}

// Schema returns the ordered, collision-resolved output columns for a
// compiled format: each non-skipped field in original order, with %t group
// leaders followed by their "_raw" companion and %r fields expanded into up
// to four sub-columns per the active skip_* flags.
func (pf *ParsedFormat) Schema(raw bool) []Column {
	var cols []Column
	for _, f := range pf.Fields {
		if f.ShouldSkip {
			continue
		}
		switch f.Directive {
		case "%r", "%>r", "%<r":
			prefix := ""
			if f.Directive == "%<r" {
				prefix = "_original"
			}
			if !f.SkipMethod {
				cols = append(cols, Column{"method" + prefix, directive.TypeText})
			}
			if !f.SkipPath {
				cols = append(cols, Column{"path" + prefix, directive.TypeText})
			}
			if !f.SkipQueryString {
				cols = append(cols, Column{"query_string" + prefix, directive.TypeText})
			}
			if !f.SkipProtocol {
				cols = append(cols, Column{"protocol" + prefix, directive.TypeText})
			}
		default:
			cols = append(cols, Column{f.ColumnName, f.Type})
			if f.Directive == "%t" {
				if raw {
					cols = append(cols, Column{f.ColumnName + "_raw", directive.TypeText})
				}
			}
		}
	}
	return cols
}
