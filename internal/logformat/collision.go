package logformat

import (
	"fmt"

	"github.com/saygox/duckdb-httpd-log/internal/directive"
)

// resolveCollisions applies the column-name collision rules in order:
// duration-family precision ranking, process-id/server-port
// bare-vs-modifier dedup, bytes first-occurrence-wins, then the generic
// cross-directive priority+suffix rule, and finally a positional
// same-directive-repeat numbering pass that also acts as a uniqueness
// safety net.
func resolveCollisions(fields []FormatField) {
	resolveDurationFamily(fields, "duration")
	resolveDurationFamily(fields, "duration_original")
	resolveBareVsModifier(fields, "%P", "process_id")
	resolveBareVsModifier(fields, "%p", "server_port")
	resolveFirstOccurrenceWins(fields, "bytes")
	resolveCrossDirectivePriority(fields)
	numberRemainingDuplicates(fields)
}

func bucketsByColumnName(fields []FormatField) map[string][]int {
	buckets := make(map[string][]int)
	for i, f := range fields {
		if f.ShouldSkip {
			continue
		}
		buckets[f.ColumnName] = append(buckets[f.ColumnName], i)
	}
	return buckets
}

// resolveDurationFamily keeps the highest-precision %T/%D field named
// columnName, breaking ties by the catalog's collision priority, and skips
// the rest with no suffix.
func resolveDurationFamily(fields []FormatField, columnName string) {
	var members []int
	for i, f := range fields {
		if !f.ShouldSkip && f.ColumnName == columnName {
			members = append(members, i)
		}
	}
	if len(members) <= 1 {
		return
	}

	winner := members[0]
	for _, idx := range members[1:] {
		if betterDurationField(fields[idx], fields[winner]) {
			winner = idx
		}
	}
	for _, idx := range members {
		if idx != winner {
			fields[idx].ShouldSkip = true
		}
	}
}

func betterDurationField(candidate, current FormatField) bool {
	if candidate.durationPrecision != current.durationPrecision {
		return candidate.durationPrecision > current.durationPrecision
	}
	cp, _ := directive.Lookup(candidate.Directive)
	cu, _ := directive.Lookup(current.Directive)
	return cp.CollisionPriority < cu.CollisionPriority
}

// resolveBareVsModifier dedups a directive whose bare form and explicit
// default-modifier form resolve to the same column (e.g. %P and %{pid}P):
// the bare form wins when present, otherwise the first occurrence wins.
func resolveBareVsModifier(fields []FormatField, dir, columnName string) {
	var members []int
	for i, f := range fields {
		if !f.ShouldSkip && f.Directive == dir && f.ColumnName == columnName {
			members = append(members, i)
		}
	}
	if len(members) <= 1 {
		return
	}

	winner := members[0]
	for _, idx := range members {
		if fields[idx].Modifier == "" {
			winner = idx
			break
		}
	}
	for _, idx := range members {
		if idx != winner {
			fields[idx].ShouldSkip = true
		}
	}
}

// resolveFirstOccurrenceWins keeps the first field positionally and skips
// the rest, with no suffix.
func resolveFirstOccurrenceWins(fields []FormatField, columnName string) {
	var members []int
	for i, f := range fields {
		if !f.ShouldSkip && f.ColumnName == columnName {
			members = append(members, i)
		}
	}
	if len(members) <= 1 {
		return
	}
	for _, idx := range members[1:] {
		fields[idx].ShouldSkip = true
	}
}

// resolveCrossDirectivePriority handles buckets whose members are all
// distinct directives from the same collision equivalence class (e.g.
// %s/%>s both naming "status", %v/%V both naming "server_name"): the
// lowest collision_priority keeps the base name, the rest append their
// catalog collision_suffix.
func resolveCrossDirectivePriority(fields []FormatField) {
	buckets := bucketsByColumnName(fields)
	for _, members := range buckets {
		if len(members) <= 1 {
			continue
		}
		if !allHaveCollisionClass(fields, members) {
			continue
		}

		sorted := append([]int(nil), members...)
		sortByPriority(fields, sorted)

		base := fields[sorted[0]].ColumnName
		for _, idx := range sorted[1:] {
			def, _ := directive.Lookup(fields[idx].Directive)
			fields[idx].ColumnName = base + def.CollisionSuffix
		}
	}
}

func allHaveCollisionClass(fields []FormatField, members []int) bool {
	if len(members) == 0 {
		return false
	}
	class := ""
	for i, idx := range members {
		def, ok := directive.Lookup(fields[idx].Directive)
		if !ok || def.CollisionClass == "" {
			return false
		}
		if i == 0 {
			class = def.CollisionClass
		} else if def.CollisionClass != class {
			return false
		}
	}
	return true
}

func sortByPriority(fields []FormatField, indices []int) {
	// insertion sort: these buckets are tiny (2-4 members typically)
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0; j-- {
			pa, _ := directive.Lookup(fields[indices[j]].Directive)
			pb, _ := directive.Lookup(fields[indices[j-1]].Directive)
			if pa.CollisionPriority < pb.CollisionPriority {
				indices[j], indices[j-1] = indices[j-1], indices[j]
			} else {
				break
			}
		}
	}
}

// numberRemainingDuplicates is the final uniqueness pass: any column name
// still shared by more than one field (same directive repeated, e.g. two
// %{User-Agent}i occurrences, or residual cross-family collisions) is
// numbered _2, _3, ... in positional order. The first occurrence keeps its
// unsuffixed name.
func numberRemainingDuplicates(fields []FormatField) {
	buckets := bucketsByColumnName(fields)
	for _, members := range buckets {
		if len(members) <= 1 {
			continue
		}
		base := fields[members[0]].ColumnName
		for n, idx := range members[1:] {
			fields[idx].ColumnName = fmt.Sprintf("%s_%d", base, n+2)
		}
	}
}
