package component

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/dmaloney/lanprobe/internal/scan"
	"github.com/dmaloney/lanprobe/internal/ui/style"
)

// HostTable renders the aggregator's ordered host results
type HostTable struct {
	table         *tview.Table
	columnHeaders []string
}

// NewHostTable returns a new HostTable
func NewHostTable() *HostTable {
	columnHeaders := []string{"IP", "STATUS", "RESPONSIVE PORTS", "COMPLETED"}

	table := createTable("hosts", columnHeaders)

	return &HostTable{
		table:         table,
		columnHeaders: columnHeaders,
	}
}

// Primitive returns the root primitive for this component
func (t *HostTable) Primitive() tview.Primitive {
	return t.table
}

// UpdateTable redraws the table from an ordered result snapshot
func (t *HostTable) UpdateTable(results []*scan.HostResult) {
	// drop stale data rows; the first two rows are the fixed header
	for row := t.table.GetRowCount() - 1; row >= len(results)+2; row-- {
		t.table.RemoveRow(row)
	}

	for rowIdx, result := range results {
		status := "unreachable"

		if result.Reachable {
			status = "reachable"
		}

		row := []string{
			result.IP,
			status,
			responsivePorts(result),
			result.CompletedAt.Format("15:04:05"),
		}

		for col, text := range row {
			cell := tview.NewTableCell(text)
			cell.SetExpansion(1)
			cell.SetAlign(tview.AlignLeft)
			color := style.ColorWhite

			if text == "reachable" {
				color = style.ColorMediumGreen
			}

			if text == "unreachable" {
				color = style.ColorDimGrey
			}

			cell.SetTextColor(color)
			t.table.SetCell(rowIdx+2, col, cell)
		}
	}
}

func responsivePorts(result *scan.HostResult) string {
	entries := []string{}

	for _, r := range result.Ports {
		if !r.Responsive() {
			continue
		}

		entry := fmt.Sprintf("%d/%s", r.Port.Number, r.Port.Label)

		if r.Latency != nil {
			entry = fmt.Sprintf("%s %dms", entry, r.Latency.Milliseconds())
		}

		entries = append(entries, entry)
	}

	return strings.Join(entries, ", ")
}
