// Package static provides non-interactive terminal output components.
//
// This package renders formatted output that needs no user interaction,
// such as the rename plan shown by a dry run.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/renum/internal/renamer"
	"github.com/raphi011/renum/internal/ui/styles"
)

// PlanHeaders are the column headers for PlanRows.
var PlanHeaders = []string{"#", "OLD", "NEW"}

// RenderTable creates a formatted table with proper column alignment.
// Column widths are computed by lipgloss/table. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle
			}
			return styles.CellStyle
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// PlanRows converts a plan into table rows matching PlanHeaders. Targets
// that would overwrite an existing entry are flagged.
func PlanRows(plan *renamer.Plan) [][]string {
	conflicts := make(map[string]bool)
	for _, c := range plan.Conflicts() {
		conflicts[c.Old] = true
	}

	rows := make([][]string, 0, plan.Len())
	for _, r := range plan.Renames {
		target := r.New
		if conflicts[r.Old] {
			target += " " + styles.WarningStyle.Render("(overwrites)")
		}
		rows = append(rows, []string{strconv.Itoa(r.Index), r.Old, target})
	}
	return rows
}
