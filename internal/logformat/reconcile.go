package logformat

// reconcileRequestLine sets skip_method/skip_path/skip_query_string/skip_protocol
// on every %r-family field when the corresponding individual directive also
// appears in the format.
func reconcileRequestLine(fields []FormatField) {
	hasMethod, hasPath, hasQuery, hasProtocol := false, false, false, false
	for _, f := range fields {
		switch f.Directive {
		case "%m":
			hasMethod = true
		case "%U", "%>U", "%<U":
			hasPath = true
		case "%q":
			hasQuery = true
		case "%H":
			hasProtocol = true
		}
	}
	if !hasMethod && !hasPath && !hasQuery && !hasProtocol {
		return
	}
	for i := range fields {
		switch fields[i].Directive {
		case "%r", "%>r", "%<r":
			fields[i].SkipMethod = hasMethod
			fields[i].SkipPath = hasPath
			fields[i].SkipQueryString = hasQuery
			fields[i].SkipProtocol = hasProtocol
		}
	}
}
