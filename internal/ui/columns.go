package ui

// columns.go provides column width calculation for bubbles/table.

import (
	"github.com/charmbracelet/bubbles/table"
)

// ColumnSpec defines a table column with flexible or fixed width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns
}

// cellPadding is the horizontal padding bubbles/table adds to each cell
const cellPadding = 2

// CalculateColumns computes column widths from specs.
// Flexible columns split the space left after fixed columns by ratio.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal - cellPadding*len(specs)
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}
		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}
		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// HistoryColumns returns column specs for the search history table.
func HistoryColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "#", FixedWidth: 4},
		{Title: "Time", FixedWidth: 8},
		{Title: "Phone Number", FlexRatio: 30, MinWidth: 14},
		{Title: "Name", FlexRatio: 30, MinWidth: 10},
		{Title: "Country", FlexRatio: 25, MinWidth: 10},
		{Title: "Type", FlexRatio: 20, MinWidth: 8},
		{Title: "Spam", FixedWidth: 5},
	}
}

// InitTable creates a table with the standard styles and the layout's height.
func InitTable(columns []table.Column, rows []table.Row, layout Layout) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)
	t.GotoTop()
	return t
}
