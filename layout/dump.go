package layout

import (
	"maps"
	"slices"

	"ksefpdf/utils/debug"
)

// Dump returns readable tree for debug reports.
func Dump(n Node) string {
	tw := debug.NewTreeWriter()
	dump(tw, 0, n)
	return tw.String()
}

// String dumps complete document including page directives.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	tw := debug.NewTreeWriter()
	w, h := d.Page.Dimensions()
	tw.Line(0, "Document kind=%s title=%q", d.Kind, d.Title)
	tw.Line(1, "Page size=%s orientation=%s %.0fx%.0f", d.Page.Size.Name, d.Page.Orientation, w, h)
	tw.Line(1, "Styles font=%q base=%.1f", d.Styles.Font, d.Styles.BaseSize)
	if d.Footer != nil {
		tw.TextBlock(1, "Footer", d.Footer.Template)
	}
	for _, ref := range slices.Sorted(maps.Keys(d.Images)) {
		b := d.Images[ref]
		tw.Line(1, "Bitmap ref=%s %dx%d bytes=%d", ref, b.Width, b.Height, len(b.Data))
	}
	dump(tw, 1, d.Content)
	return tw.String()
}

func dump(tw *debug.TreeWriter, depth int, n Node) {
	switch v := n.(type) {
	case nil:
		tw.Line(depth, "<nil>")
	case *Text:
		label := "Text"
		if v.Class != ClassBody {
			label += "." + string(v.Class)
		}
		if v.Bold {
			label += "+bold"
		}
		tw.TextBlock(depth, label, v.Value)
	case *Section:
		tw.Line(depth, "Section id=%s title=%q", v.ID, v.Title)
		for _, it := range v.Items {
			dump(tw, depth+1, it)
		}
	case *Stack:
		dir := "vertical"
		if v.Direction == Horizontal {
			dir = "horizontal"
		}
		tw.Line(depth, "Stack %s", dir)
		for _, it := range v.Items {
			dump(tw, depth+1, it)
		}
	case *Table:
		tw.Line(depth, "Table columns=%d rows=%d", len(v.Columns), len(v.Rows))
		for _, c := range v.Columns {
			if c.Header != "" {
				tw.TextBlock(depth+1, "Column", c.Header)
			}
		}
		for i, row := range v.Rows {
			tw.Line(depth+1, "Row[%d]", i)
			for _, cell := range row {
				dump(tw, depth+2, cell)
			}
		}
	case *QRCode:
		tw.Line(depth, "QRCode bytes=%d", len(v.Payload))
		if v.Caption != "" {
			tw.TextBlock(depth+1, "Caption", v.Caption)
		}
	case *Image:
		tw.Line(depth, "Image ref=%s width=%.1f", v.Ref, v.Width)
	case *Spacer:
		tw.Line(depth, "Spacer %.1f", v.Height)
	case *Rule:
		tw.Line(depth, "Rule")
	}
}
