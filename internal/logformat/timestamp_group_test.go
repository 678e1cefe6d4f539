package logformat

import "testing"

func TestGroupTimestampsSingleGroup(t *testing.T) {
	fields := tokenize(`%t`)
	groups := groupTimestamps(fields)
	if len(groups) != 1 || groups[0].Leader != 0 {
		t.Fatalf("groups = %+v", groups)
	}
	if fields[0].ColumnName != "" {
		// ColumnName is set by buildField before grouping; tokenize already
		// assigned "timestamp" for %t, so grouping should not have renamed it
		// (no begin/end split in a single-group format).
		if fields[0].ColumnName != "timestamp" {
			t.Errorf("ColumnName = %q, want timestamp", fields[0].ColumnName)
		}
	}
}

func TestGroupTimestampsBeginEndSplitRenamesLeader(t *testing.T) {
	fields := tokenize(`%{begin:sec}t %{end:sec}t`)
	groups := groupTimestamps(fields)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if fields[0].ColumnName != "timestamp_original" {
		t.Errorf("begin leader ColumnName = %q, want timestamp_original", fields[0].ColumnName)
	}
	if fields[1].ColumnName != "timestamp" {
		t.Errorf("end leader ColumnName = %q, want timestamp", fields[1].ColumnName)
	}
}

func TestGroupTimestampsConsecutiveSamePolarityCollapse(t *testing.T) {
	fields := tokenize(`%{begin:sec}t %{begin:msec_frac}t`)
	groups := groupTimestamps(fields)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if !fields[1].ShouldSkip {
		t.Error("second field in a same-polarity run should be marked ShouldSkip")
	}
	if fields[0].ShouldSkip {
		t.Error("group leader should not be skipped")
	}
}
