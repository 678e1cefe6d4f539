package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Background(lipgloss.Color("#333333")).
			Bold(true).
			Padding(0, 1)
)

// RowBatchMsg carries newly scanned rows into the TUI.
type RowBatchMsg struct {
	Rows []Entry
}

// ErrMsg carries a scan error into the TUI.
type ErrMsg struct {
	Err error
}

// DoneMsg signals the scan has finished draining every input file.
type DoneMsg struct{}

// FormatChangedMsg signals --watch-conf rebound the format to a new schema;
// the row buffer is reset since old rows no longer match the columns.
type FormatChangedMsg struct {
	ColumnNames []string
}

// Entry is one scanned row plus whether it was a parse failure (raw mode).
type Entry struct {
	Values     []any
	ParseError bool
}

// Model is the row browser TUI for cmd/httpdlog.
type Model struct {
	width  int
	height int
	ready  bool

	columnNames []string
	renderer    *Renderer

	// Row buffer — accumulated as the scan streams in.
	rows []Entry

	// Virtual scrolling state.
	offset     int  // index of the first visible row
	autoScroll bool // stick to bottom when new rows arrive

	sourceName string
	scanDone   bool
	lastErr    error
}

// NewModel creates a row browser model for the given column projection.
func NewModel(columnNames []string, sourceName string) Model {
	return Model{
		columnNames: columnNames,
		renderer:    NewRenderer(DefaultConfig()),
		autoScroll:  true,
		sourceName:  sourceName,
	}
}

// viewHeight returns the number of rows available for the table body
// (total height minus title bar, header, and status bar).
func (m Model) viewHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

// maxOffset returns the maximum valid scroll offset.
func (m Model) maxOffset() int {
	max := len(m.rows) - m.viewHeight()
	if max < 0 {
		return 0
	}
	return max
}

// clampOffset ensures offset is within valid bounds.
func (m *Model) clampOffset() {
	if m.offset < 0 {
		m.offset = 0
	}
	if max := m.maxOffset(); m.offset > max {
		m.offset = max
	}
}

// isAtBottom returns true if the viewport is scrolled to the bottom.
func (m Model) isAtBottom() bool {
	return m.offset >= m.maxOffset()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			m.autoScroll = false
			m.offset++
			m.clampOffset()
			if m.isAtBottom() {
				m.autoScroll = true
			}
		case "k", "up":
			m.autoScroll = false
			m.offset--
			m.clampOffset()
		case "g", "home":
			m.autoScroll = false
			m.offset = 0
		case "G", "end":
			m.offset = m.maxOffset()
			m.autoScroll = true
		case "pgdown", "f", "ctrl+f":
			m.autoScroll = false
			m.offset += m.viewHeight()
			m.clampOffset()
			if m.isAtBottom() {
				m.autoScroll = true
			}
		case "pgup", "b", "ctrl+b":
			m.autoScroll = false
			m.offset -= m.viewHeight()
			m.clampOffset()
		case "d", "ctrl+d":
			m.autoScroll = false
			m.offset += m.viewHeight() / 2
			m.clampOffset()
			if m.isAtBottom() {
				m.autoScroll = true
			}
		case "u", "ctrl+u":
			m.autoScroll = false
			m.offset -= m.viewHeight() / 2
			m.clampOffset()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.autoScroll {
			m.offset = m.maxOffset()
		}
		m.clampOffset()

	case RowBatchMsg:
		m.rows = append(m.rows, msg.Rows...)
		if m.autoScroll {
			m.offset = m.maxOffset()
		}

	case ErrMsg:
		m.lastErr = msg.Err

	case DoneMsg:
		m.scanDone = true

	case FormatChangedMsg:
		m.columnNames = msg.ColumnNames
		m.rows = nil
		m.offset = 0
		m.scanDone = false
		m.lastErr = nil
	}
	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	title := titleStyle.Render("httpdlog")
	b.WriteString(title)
	b.WriteByte('\n')

	widths := m.renderer.ColumnWidths(m.columnNames, valuesOf(m.rows))
	b.WriteString(m.renderer.RenderHeader(m.columnNames, widths))
	b.WriteByte('\n')

	// Table body — virtual scrolling: only render the visible slice.
	vh := m.viewHeight()
	if len(m.rows) == 0 {
		for i := 0; i < vh; i++ {
			if i == vh/2-1 {
				b.WriteString("  No rows yet.")
			} else if i == vh/2 {
				if m.lastErr != nil {
					b.WriteString(fmt.Sprintf("  Error: %v", m.lastErr))
				} else {
					b.WriteString("  Scanning...")
				}
			}
			b.WriteByte('\n')
		}
	} else {
		end := m.offset + vh
		if end > len(m.rows) {
			end = len(m.rows)
		}
		start := m.offset
		if start < 0 {
			start = 0
		}
		rendered := 0
		for i := start; i < end; i++ {
			b.WriteString(m.renderer.RenderRow(m.rows[i].Values, widths, m.rows[i].ParseError))
			b.WriteByte('\n')
			rendered++
		}
		for i := rendered; i < vh; i++ {
			b.WriteByte('\n')
		}
	}

	total := len(m.rows)
	scrollInfo := "bottom"
	if total > 0 && !m.isAtBottom() {
		pct := 0
		if m.maxOffset() > 0 {
			pct = m.offset * 100 / m.maxOffset()
		}
		scrollInfo = fmt.Sprintf("%d%%", pct)
	}

	status := "scanning"
	if m.scanDone {
		status = "done"
	}

	left := statusKeyStyle.Render("Rows:") + statusBarStyle.Render(fmt.Sprintf(" %d ", total))
	right := statusKeyStyle.Render("Pos:") + statusBarStyle.Render(fmt.Sprintf(" %s ", scrollInfo))
	srcInfo := statusKeyStyle.Render("Src:") + statusBarStyle.Render(fmt.Sprintf(" %s [%s] ", m.sourceName, status))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - lipgloss.Width(srcInfo)
	if gap < 0 {
		gap = 0
	}
	statusLine := left + srcInfo + strings.Repeat(" ", gap) + right
	statusLine = statusBarStyle.Render(statusLine)
	b.WriteString(statusLine)

	return b.String()
}

// WaitForRows returns a tea.Cmd that reads one batch from rowCh and turns it
// into a RowBatchMsg; a closed rowCh yields a DoneMsg.
func WaitForRows(rowCh <-chan []Entry) tea.Cmd {
	return func() tea.Msg {
		batch, ok := <-rowCh
		if !ok {
			return DoneMsg{}
		}
		return RowBatchMsg{Rows: batch}
	}
}

func valuesOf(rows []Entry) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = r.Values
	}
	return out
}
