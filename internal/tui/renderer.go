// Package tui provides the interactive row browser used by cmd/httpdlog.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents terminal color theme.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

// RenderConfig holds rendering configuration for the row table.
type RenderConfig struct {
	Theme         Theme
	TerminalWidth int
	MinColWidth   int
	MaxColWidth   int
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		Theme:         ThemeDark,
		TerminalWidth: 120,
		MinColWidth:   6,
		MaxColWidth:   32,
	}
}

// Renderer renders column headers and rows as a styled, fixed-width table.
type Renderer struct {
	config RenderConfig
	styles themeStyles
}

type themeStyles struct {
	header    lipgloss.Style
	cell      lipgloss.Style
	nullCell  lipgloss.Style
	errorCell lipgloss.Style
	separator lipgloss.Style
}

func darkStyles() themeStyles {
	return themeStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
		cell:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		nullCell:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		errorCell: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		separator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func lightStyles() themeStyles {
	return themeStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		cell:      lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		nullCell:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errorCell: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		separator: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	}
}

// NewRenderer creates a new Renderer with the given config.
func NewRenderer(config RenderConfig) *Renderer {
	if config.TerminalWidth <= 0 {
		config.TerminalWidth = 120
	}
	if config.MinColWidth <= 0 {
		config.MinColWidth = 6
	}
	if config.MaxColWidth <= 0 {
		config.MaxColWidth = 32
	}
	var styles themeStyles
	if config.Theme == ThemeLight {
		styles = lightStyles()
	} else {
		styles = darkStyles()
	}
	return &Renderer{config: config, styles: styles}
}

// ColumnWidths assigns each column a display width from the header and
// every row's content, clamped to [MinColWidth, MaxColWidth].
func (r *Renderer) ColumnWidths(names []string, rows [][]any) []int {
	widths := make([]int, len(names))
	for i, n := range names {
		widths[i] = len(n)
	}
	for _, row := range rows {
		for i, v := range row {
			if i >= len(widths) {
				continue
			}
			if n := len(formatValue(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] < r.config.MinColWidth {
			widths[i] = r.config.MinColWidth
		}
		if widths[i] > r.config.MaxColWidth {
			widths[i] = r.config.MaxColWidth
		}
	}
	return widths
}

// RenderHeader renders the column-name header row.
func (r *Renderer) RenderHeader(names []string, widths []int) string {
	var parts []string
	for i, n := range names {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		parts = append(parts, r.styles.header.Render(padTrunc(n, w)))
	}
	return strings.Join(parts, r.styles.separator.Render(" │ "))
}

// RenderRow renders one data row aligned to widths. isError styles the
// entire row as a parse failure (raw mode's parse_error rows).
func (r *Renderer) RenderRow(values []any, widths []int, isError bool) string {
	var parts []string
	for i, v := range values {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		text := padTrunc(formatValue(v), w)
		switch {
		case isError:
			parts = append(parts, r.styles.errorCell.Render(text))
		case v == nil:
			parts = append(parts, r.styles.nullCell.Render(text))
		default:
			parts = append(parts, r.styles.cell.Render(text))
		}
	}
	return strings.Join(parts, r.styles.separator.Render(" │ "))
}

// formatValue renders a single cell value: nil prints as "-", matching the
// null-column convention used elsewhere in output.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case time.Time:
		return val.Format(time.RFC3339)
	case time.Duration:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// padTrunc fits s into width columns: it space-pads s to width bytes, or
// truncates it to width-1 bytes followed by a "…" ellipsis.
func padTrunc(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) == width {
		return s
	}
	if len(s) < width {
		return s + strings.Repeat(" ", width-len(s))
	}
	if width == 1 {
		return "…"
	}
	return s[:width-1] + "…"
}
