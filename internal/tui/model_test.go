package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func setupModel(width, height int, rows int) Model {
	m := NewModel([]string{"a", "b"}, "access.log")
	m.width = width
	m.height = height
	m.ready = true
	for i := 0; i < rows; i++ {
		m.rows = append(m.rows, Entry{Values: []any{fmt.Sprintf("row%d", i), i}})
	}
	if m.autoScroll {
		m.offset = m.maxOffset()
	}
	return m
}

func TestNewModel(t *testing.T) {
	m := NewModel([]string{"a"}, "access.log")
	if !m.autoScroll {
		t.Error("expected autoScroll to be true by default")
	}
	if len(m.rows) != 0 {
		t.Error("expected empty row buffer")
	}
}

func TestViewHeight(t *testing.T) {
	m := setupModel(80, 24, 0)
	// height=24, overhead=3 → viewHeight=21
	if vh := m.viewHeight(); vh != 21 {
		t.Errorf("viewHeight() = %d, want 21", vh)
	}
}

func TestViewHeightMinimum(t *testing.T) {
	m := setupModel(80, 2, 0)
	if vh := m.viewHeight(); vh < 1 {
		t.Errorf("viewHeight() = %d, want >= 1", vh)
	}
}

func TestMaxOffset(t *testing.T) {
	m := setupModel(80, 24, 100)
	// viewHeight=21, 100 rows → maxOffset=79
	if max := m.maxOffset(); max != 79 {
		t.Errorf("maxOffset() = %d, want 79", max)
	}
}

func TestMaxOffsetFewRows(t *testing.T) {
	m := setupModel(80, 24, 5)
	if max := m.maxOffset(); max != 0 {
		t.Errorf("maxOffset() = %d, want 0 (fewer rows than viewport)", max)
	}
}

func TestScrollDown(t *testing.T) {
	m := setupModel(80, 24, 100)
	m.offset = 0
	m.autoScroll = false

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(Model)

	if m.offset != 1 {
		t.Errorf("offset = %d, want 1 after scroll down", m.offset)
	}
}

func TestScrollUp(t *testing.T) {
	m := setupModel(80, 24, 100)
	m.offset = 10
	m.autoScroll = false

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(Model)

	if m.offset != 9 {
		t.Errorf("offset = %d, want 9 after scroll up", m.offset)
	}
}

func TestJumpToTop(t *testing.T) {
	m := setupModel(80, 24, 100)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	m = updated.(Model)

	if m.offset != 0 {
		t.Errorf("offset = %d, want 0 after g", m.offset)
	}
	if m.autoScroll {
		t.Error("expected autoScroll to be disabled after jumping to top")
	}
}

func TestJumpToBottomReenablesAutoScroll(t *testing.T) {
	m := setupModel(80, 24, 100)
	m.offset = 0
	m.autoScroll = false

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	m = updated.(Model)

	if m.offset != m.maxOffset() {
		t.Errorf("offset = %d, want %d after G", m.offset, m.maxOffset())
	}
	if !m.autoScroll {
		t.Error("expected autoScroll to be re-enabled after jumping to bottom")
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(80, 24, 0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}

func TestRowBatchAppendsAndAutoScrolls(t *testing.T) {
	m := setupModel(80, 24, 0)
	m.autoScroll = true

	updated, _ := m.Update(RowBatchMsg{Rows: []Entry{
		{Values: []any{"x", 1}},
		{Values: []any{"y", 2}},
	}})
	m = updated.(Model)

	if len(m.rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(m.rows))
	}
	if m.offset != m.maxOffset() {
		t.Errorf("offset = %d, want maxOffset() = %d (auto-scroll)", m.offset, m.maxOffset())
	}
}

func TestErrMsgRecorded(t *testing.T) {
	m := setupModel(80, 24, 0)
	updated, _ := m.Update(ErrMsg{Err: fmt.Errorf("boom")})
	m = updated.(Model)
	if m.lastErr == nil {
		t.Error("expected lastErr to be set")
	}
}

func TestDoneMsgMarksScanDone(t *testing.T) {
	m := setupModel(80, 24, 0)
	updated, _ := m.Update(DoneMsg{})
	m = updated.(Model)
	if !m.scanDone {
		t.Error("expected scanDone to be true")
	}
}

func TestViewRendersWithoutPanic(t *testing.T) {
	m := setupModel(80, 24, 5)
	out := m.View()
	if out == "" {
		t.Error("expected non-empty view")
	}
}
