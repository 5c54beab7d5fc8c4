package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders query results. Styled output is a rounded lipgloss table
// with a row-count footer; plain output is tab-separated so it pipes
// cleanly into cut, awk and spreadsheets.
// Columns listed in numeric are right-aligned.
func (u *UI) Table(headers []string, rows [][]string, numeric ...int) string {
	if !u.shouldStyle() {
		var sb strings.Builder
		sb.WriteString(strings.Join(headers, "\t"))
		sb.WriteString("\n")
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
		return sb.String()
	}

	rightAligned := make(map[int]bool, len(numeric))
	for _, col := range numeric {
		rightAligned[col] = true
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	oddStyle := cellStyle.Foreground(ColorMuted)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 1:
				style = oddStyle
			default:
				style = cellStyle
			}
			if rightAligned[col] {
				style = style.Align(lipgloss.Right)
			}
			return style
		}).
		Headers(headers...).
		Rows(rows...)

	return t.Render() + "\n" + StyleMuted.Render(fmt.Sprintf("  %d rows", len(rows))) + "\n"
}
