package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"ksefpdf/layout"
)

// All measurements are in millimeters.
const (
	cellPadding   = 1.0
	tableSpacing  = 1.5
	ruleHeight    = 2.0
	defaultQRSize = 32.0
	qrPixels      = 512
	pagesAlias    = "{nb}"
)

// writer draws layout nodes top to bottom. Every draw call starts at current
// Y and leaves Y below what was drawn, X is always passed explicitly.
type writer struct {
	pdf    *fpdf.Fpdf
	family string
	styles layout.StyleSheet
	images int

	bitmaps map[string]layout.Bitmap
	// registered maps bitmap ref to fpdf image name
	registered map[string]string
}

func (w *writer) setFont(st layout.Style) {
	style := ""
	if st.Bold {
		style += "B"
	}
	if st.Italic {
		style += "I"
	}
	w.pdf.SetFont(w.family, style, st.Size)
}

func (w *writer) lineHeight(st layout.Style) float64 {
	return w.pdf.PointConvert(st.Size) * w.styles.LineHeight
}

func (w *writer) classStyle(c layout.Class) layout.Style {
	return w.styles.Resolve(&layout.Text{Class: c})
}

// bottom is the lowest Y content may reach on the page.
func (w *writer) bottom() float64 {
	_, h := w.pdf.GetPageSize()
	_, m := w.pdf.GetAutoPageBreak()
	return h - m
}

func (w *writer) contentHeight() float64 {
	_, top, _, _ := w.pdf.GetMargins()
	return w.bottom() - top
}

// ensure starts new page unless block of height h fits below current
// position. Blocks taller than a page are left to automatic page breaks.
func (w *writer) ensure(h float64) {
	if w.pdf.GetY()+h > w.bottom() && h <= w.contentHeight() {
		w.pdf.AddPage()
	}
}

func alignStr(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "C"
	case layout.AlignRight:
		return "R"
	}
	return "L"
}

func (w *writer) footer(f layout.Footer) {
	w.pdf.AliasNbPages(pagesAlias)
	w.pdf.SetFooterFunc(func() {
		st := w.classStyle(f.Class)
		lh := w.lineHeight(st)
		left, _, right, bottom := w.pdf.GetMargins()
		pw, ph := w.pdf.GetPageSize()
		w.setFont(st)
		w.pdf.SetXY(left, ph-bottom+(bottom-lh)/2)
		w.pdf.CellFormat(pw-left-right, lh, f.Resolve(w.pdf.PageNo(), pagesAlias), "", 0, alignStr(f.Align), false, 0, "")
	})
}

func (w *writer) draw(n layout.Node, x, width float64) {
	if w.pdf.Err() {
		return
	}
	switch v := n.(type) {
	case *layout.Text:
		w.drawText(v, x, width)
	case *layout.Stack:
		w.drawStack(v, x, width)
	case *layout.Section:
		w.drawSection(v, x, width)
	case *layout.Table:
		w.drawTable(v, x, width)
	case *layout.QRCode:
		w.drawQR(v, x, width)
	case *layout.Image:
		w.drawImage(v, x, width)
	case *layout.Spacer:
		if w.pdf.GetY()+v.Height > w.bottom() {
			w.pdf.AddPage()
		} else {
			w.pdf.SetXY(x, w.pdf.GetY()+v.Height)
		}
	case *layout.Rule:
		w.ensure(ruleHeight)
		y := w.pdf.GetY() + ruleHeight/2
		w.pdf.Line(x, y, x+width, y)
		w.pdf.SetXY(x, y+ruleHeight/2)
	}
}

// height measures node without drawing it.
func (w *writer) height(n layout.Node, width float64) float64 {
	switch v := n.(type) {
	case *layout.Text:
		return w.textHeight(v, width)
	case *layout.Stack:
		if v.Direction == layout.Horizontal && len(v.Items) > 1 {
			cw := w.stackColumnWidth(v, width)
			h := 0.0
			for _, it := range v.Items {
				h = max(h, w.height(it, cw))
			}
			return h
		}
		h := 0.0
		for i, it := range v.Items {
			if i > 0 {
				h += v.Gap
			}
			h += w.height(it, width)
		}
		return h
	case *layout.Section:
		h := 0.0
		if v.Title != "" {
			h += w.textHeight(sectionHeading(v), width)
		}
		for _, it := range v.Items {
			h += w.height(it, width)
		}
		return h
	case *layout.Table:
		widths := columnWidths(v.Columns, width)
		h := tableSpacing
		if v.HasHeader() {
			h += w.rowHeight(headerCells(v), widths)
		}
		for _, row := range v.Rows {
			h += w.rowHeight(row, widths)
		}
		return h
	case *layout.QRCode:
		size := qrSize(v, width)
		if v.Caption != "" {
			size += w.textHeight(qrCaption(v), width)
		}
		return size
	case *layout.Image:
		_, h := w.imageSize(v, width)
		return h
	case *layout.Spacer:
		return v.Height
	case *layout.Rule:
		return ruleHeight
	}
	return 0
}

func (w *writer) textLines(value string, st layout.Style, width float64) []string {
	w.setFont(st)
	lines := w.pdf.SplitText(value, width)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func (w *writer) textHeight(t *layout.Text, width float64) float64 {
	st := w.styles.Resolve(t)
	lines := w.textLines(t.Value, st, width)
	return st.SpaceBefore + t.MarginTop + float64(len(lines))*w.lineHeight(st) + st.SpaceAfter + t.MarginBottom
}

func (w *writer) drawText(t *layout.Text, x, width float64) {
	st := w.styles.Resolve(t)
	lines := w.textLines(t.Value, st, width)
	lh := w.lineHeight(st)

	w.pdf.SetXY(x, w.pdf.GetY()+st.SpaceBefore+t.MarginTop)
	for _, line := range lines {
		w.pdf.SetX(x)
		w.pdf.CellFormat(width, lh, line, "", 2, alignStr(t.Align), false, 0, "")
	}
	w.pdf.SetXY(x, w.pdf.GetY()+st.SpaceAfter+t.MarginBottom)
}

func (w *writer) stackColumnWidth(s *layout.Stack, width float64) float64 {
	n := float64(len(s.Items))
	return (width - s.Gap*(n-1)) / n
}

func (w *writer) drawStack(s *layout.Stack, x, width float64) {
	horizontal := s.Direction == layout.Horizontal && len(s.Items) > 1
	if horizontal && w.height(s, width) > w.contentHeight() {
		// side by side does not fit any page, fall back to plain column
		horizontal = false
	}

	if !horizontal {
		for i, it := range s.Items {
			if i > 0 && s.Gap > 0 {
				w.pdf.SetXY(x, w.pdf.GetY()+s.Gap)
			}
			w.draw(it, x, width)
		}
		return
	}

	w.ensure(w.height(s, width))
	cw := w.stackColumnWidth(s, width)
	top, lowest := w.pdf.GetY(), w.pdf.GetY()
	for i, it := range s.Items {
		cx := x + float64(i)*(cw+s.Gap)
		w.pdf.SetXY(cx, top)
		w.draw(it, cx, cw)
		lowest = max(lowest, w.pdf.GetY())
	}
	w.pdf.SetXY(x, lowest)
}

func sectionHeading(s *layout.Section) *layout.Text {
	return &layout.Text{Value: s.Title, Class: layout.ClassHeading}
}

func (w *writer) drawSection(s *layout.Section, x, width float64) {
	if s.Title != "" {
		head := sectionHeading(s)
		// keep heading together with the beginning of section body
		need := w.textHeight(head, width)
		if len(s.Items) > 0 {
			need += min(w.height(s.Items[0], width), 3*w.lineHeight(w.classStyle(layout.ClassBody)))
		}
		w.ensure(need)
		w.drawText(head, x, width)
	}
	for _, it := range s.Items {
		w.draw(it, x, width)
	}
}

// columnWidths splits width according to relative column weights, columns
// without weight get average of the others.
func columnWidths(cols []layout.Column, width float64) []float64 {
	var sum float64
	var weighted int
	for _, c := range cols {
		if c.Width > 0 {
			sum += c.Width
			weighted++
		}
	}
	fill := 1.0
	if weighted > 0 {
		fill = sum / float64(weighted)
	}
	total := sum + fill*float64(len(cols)-weighted)

	out := make([]float64, len(cols))
	for i, c := range cols {
		wt := c.Width
		if wt <= 0 {
			wt = fill
		}
		out[i] = width * wt / total
	}
	return out
}

func headerCells(t *layout.Table) []layout.Node {
	cells := make([]layout.Node, len(t.Columns))
	for i, c := range t.Columns {
		cells[i] = &layout.Text{Value: c.Header, Class: layout.ClassTableHeader, Align: c.Align}
	}
	return cells
}

func (w *writer) rowHeight(cells []layout.Node, widths []float64) float64 {
	h := 0.0
	for i, c := range cells {
		if i >= len(widths) || c == nil {
			continue
		}
		h = max(h, w.height(c, widths[i]-2*cellPadding))
	}
	return h + 2*cellPadding
}

func (w *writer) drawRow(cells []layout.Node, x float64, widths []float64, h float64, borders, header bool) {
	y := w.pdf.GetY()
	cx := x
	for i, cw := range widths {
		switch {
		case header:
			w.pdf.SetFillColor(235, 235, 235)
			style := "F"
			if borders {
				style = "FD"
			}
			w.pdf.Rect(cx, y, cw, h, style)
		case borders:
			w.pdf.Rect(cx, y, cw, h, "D")
		}
		if i < len(cells) && cells[i] != nil {
			w.pdf.SetXY(cx+cellPadding, y+cellPadding)
			w.draw(cells[i], cx+cellPadding, cw-2*cellPadding)
		}
		cx += cw
	}
	w.pdf.SetXY(x, y+h)
}

func (w *writer) drawTable(t *layout.Table, x, width float64) {
	widths := columnWidths(t.Columns, width)

	var header []layout.Node
	var headerH float64
	if t.HasHeader() {
		header = headerCells(t)
		headerH = w.rowHeight(header, widths)
	}
	drawHeader := func() {
		if header != nil {
			w.drawRow(header, x, widths, headerH, t.Borders, true)
		}
	}

	if len(t.Rows) == 0 {
		w.ensure(headerH)
		drawHeader()
	}
	for i, row := range t.Rows {
		rh := w.rowHeight(row, widths)
		switch {
		case i == 0:
			w.ensure(headerH + rh)
			drawHeader()
		case w.pdf.GetY()+rh > w.bottom() && headerH+rh <= w.contentHeight():
			// header is repeated on every page table spans
			w.pdf.AddPage()
			drawHeader()
		}
		w.drawRow(row, x, widths, rh, t.Borders, false)
	}
	w.pdf.SetXY(x, w.pdf.GetY()+tableSpacing)
}

func qrSize(q *layout.QRCode, width float64) float64 {
	size := q.Size
	if size <= 0 {
		size = defaultQRSize
	}
	return min(size, width)
}

func qrCaption(q *layout.QRCode) *layout.Text {
	return &layout.Text{Value: q.Caption, Class: layout.ClassSmall}
}

func (w *writer) drawQR(q *layout.QRCode, x, width float64) {
	png, err := qrcode.Encode(q.Payload, qrcode.Medium, qrPixels)
	if err != nil {
		w.pdf.SetError(fmt.Errorf("qr code: %w", err))
		return
	}

	size := qrSize(q, width)
	w.ensure(w.height(q, width))

	w.images++
	name := fmt.Sprintf("qr-%d", w.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

	y := w.pdf.GetY()
	w.pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	w.pdf.SetXY(x, y+size)
	if q.Caption != "" {
		w.drawText(qrCaption(q), x, width)
	}
}

// imageSize returns placed picture dimensions, zero height means there is
// nothing to draw.
func (w *writer) imageSize(img *layout.Image, width float64) (float64, float64) {
	b, ok := w.bitmaps[img.Ref]
	if !ok || len(b.Data) == 0 || b.Aspect() == 0 {
		return 0, 0
	}
	iw := width
	if img.Width > 0 {
		iw = min(img.Width, width)
	}
	return iw, iw * b.Aspect()
}

func (w *writer) drawImage(img *layout.Image, x, width float64) {
	iw, ih := w.imageSize(img, width)
	if ih == 0 {
		return
	}
	w.ensure(ih)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name, ok := w.registered[img.Ref]
	if !ok {
		w.images++
		name = fmt.Sprintf("img-%d", w.images)
		w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(w.bitmaps[img.Ref].Data))
		if w.registered == nil {
			w.registered = make(map[string]string)
		}
		w.registered[img.Ref] = name
	}

	ix := x
	switch img.Align {
	case layout.AlignCenter:
		ix += (width - iw) / 2
	case layout.AlignRight:
		ix += width - iw
	}
	y := w.pdf.GetY()
	w.pdf.ImageOptions(name, ix, y, iw, ih, false, opts, 0, "")
	w.pdf.SetXY(x, y+ih)
}
