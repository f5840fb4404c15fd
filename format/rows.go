package format

import (
	"strings"

	"ksefpdf/layout"
)

// Optional returns labeled row or nil when value is empty. Absent optional
// fields never leave a dangling label behind.
func Optional(label, value string) layout.Node {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &layout.Text{Value: label + ": " + value}
}

// Required always returns labeled row, missing value is replaced by
// Placeholder so the gap is visible on the document.
func Required(label, value string) *layout.Text {
	value = strings.TrimSpace(value)
	if value == "" {
		value = Placeholder
	}
	return &layout.Text{Value: label + ": " + value}
}

// OrPlaceholder returns value or Placeholder when value is empty. Used for
// mandatory table cells.
func OrPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}

// OptionalFlag returns row with label when schema flag is set, nil otherwise.
func OptionalFlag(label, flag string) layout.Node {
	if !IsSet(flag) {
		return nil
	}
	return &layout.Text{Value: label}
}

// Rows drops nil nodes, handy with Optional.
func Rows(nodes ...layout.Node) []layout.Node {
	return layout.Compact(nodes...)
}

// Table returns bordered table of text cells or nil when there are no rows.
// Cells of columns aligned right stay right aligned.
func Table(columns []layout.Column, rows [][]string) layout.Node {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]layout.Node, 0, len(rows))
	for _, r := range rows {
		cells := make([]layout.Node, len(r))
		for i, v := range r {
			cell := layout.Cell(v)
			if i < len(columns) {
				cell.Align = columns[i].Align
			}
			cells[i] = cell
		}
		out = append(out, cells)
	}
	return &layout.Table{Columns: columns, Rows: out, Borders: true}
}

// Group returns vertical stack with heading on top of items, nil when all
// items are nil so headings of absent data never show up.
func Group(title string, items ...layout.Node) layout.Node {
	compact := layout.Compact(items...)
	if len(compact) == 0 {
		return nil
	}
	head := &layout.Text{Value: title, Class: layout.ClassHeading}
	return &layout.Stack{Direction: layout.Vertical, Items: append([]layout.Node{head}, compact...)}
}
