// Package report formats engine results for terminal output.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// columns lays rows out under headers with two-space gaps. The first column
// is right-aligned and the last one is never padded. Every row must have
// len(headers) cells.
func columns(headers []string, rows [][]string) []string {
	all := append([][]string{headers}, rows...)
	widths := make([]int, len(headers))
	for _, row := range all {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(all))
	for _, row := range all {
		cells := make([]string, len(row))
		for i, cell := range row {
			pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
			switch {
			case i == 0:
				cells[i] = pad + cell
			case i == len(row)-1:
				cells[i] = cell
			default:
				cells[i] = cell + pad
			}
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	return lines
}
