// Package assemble wraps content produced by the builders with page level
// directives: page size and orientation, style sheet and footer rule. Invoices
// may also get a logo above the content.
package assemble

import (
	"maps"

	"ksefpdf/common"
	"ksefpdf/layout"
)

// DefaultFooter is used when Options do not specify footer template.
const DefaultFooter = "Strona {page} z {pages}"

// DefaultFont names the family embedded by the renderer.
const DefaultFont = "Go"

// Options carries configurable part of page setup. Zero fields take defaults.
type Options struct {
	Title   string
	Margins layout.Margins
	Styles  layout.StyleSheet
	// Footer template, "-" disables footer.
	Footer string
	// Logo is put on top of the first invoice page, nil means no logo.
	Logo      *layout.Bitmap
	LogoWidth float64
}

// LogoRef names logo bitmap in layout documents.
const LogoRef = "logo"

// DefaultLogoWidth in millimeters.
const DefaultLogoWidth = 40.0

// DefaultStyles returns style sheet used when configuration does not say
// otherwise. Sizes are in points, spacing in millimeters.
func DefaultStyles() layout.StyleSheet {
	return layout.StyleSheet{
		Font:       DefaultFont,
		BaseSize:   8,
		LineHeight: 1.3,
		Classes: map[layout.Class]layout.Style{
			layout.ClassTitle:       {Size: 16, Bold: true, SpaceAfter: 1},
			layout.ClassSubtitle:    {Size: 10, SpaceAfter: 2},
			layout.ClassHeading:     {Size: 10, Bold: true, SpaceBefore: 4, SpaceAfter: 1.5},
			layout.ClassLabel:       {Bold: true},
			layout.ClassTableHeader: {Size: 7, Bold: true},
			layout.ClassTableCell:   {Size: 7},
			layout.ClassSmall:       {Size: 6.5},
		},
	}
}

var defaultMargins = layout.Margins{Left: 12, Top: 12, Right: 12, Bottom: 15}

// Document produces complete layout document. Invoices are portrait, UPO is
// landscape, both on A4.
func Document(kind common.DocumentType, content layout.Node, opts Options) *layout.Document {
	orientation := common.OrientationPortrait
	if !kind.IsInvoice() {
		orientation = common.OrientationLandscape
	}

	doc := &layout.Document{
		Title: opts.Title,
		Kind:  kind,
		Page: layout.Page{
			Size:        layout.PageA4,
			Orientation: orientation,
			Margins:     margins(opts.Margins),
		},
		Styles:  styles(opts.Styles),
		Content: content,
	}
	if doc.Title == "" {
		doc.Title = defaultTitle(kind)
	}
	if kind.IsInvoice() && opts.Logo != nil && len(opts.Logo.Data) > 0 {
		width := opts.LogoWidth
		if width <= 0 {
			width = DefaultLogoWidth
		}
		doc.Images = map[string]layout.Bitmap{LogoRef: *opts.Logo}
		doc.Content = layout.VStack(&layout.Image{Ref: LogoRef, Width: width}, &layout.Spacer{Height: 2}, content)
	}

	switch opts.Footer {
	case "-":
	case "":
		doc.Footer = &layout.Footer{Template: DefaultFooter, Class: layout.ClassSmall, Align: layout.AlignRight}
	default:
		doc.Footer = &layout.Footer{Template: opts.Footer, Class: layout.ClassSmall, Align: layout.AlignRight}
	}
	return doc
}

func defaultTitle(kind common.DocumentType) string {
	if kind.IsInvoice() {
		return "Faktura VAT"
	}
	return "Urzędowe Poświadczenie Odbioru"
}

func margins(m layout.Margins) layout.Margins {
	if m == (layout.Margins{}) {
		return defaultMargins
	}
	return m
}

// styles fills what is missing from defaults. Class map is always a copy so
// documents never share mutable state with configuration.
func styles(s layout.StyleSheet) layout.StyleSheet {
	def := DefaultStyles()
	if s.Font == "" {
		s.Font = def.Font
	}
	if s.BaseSize <= 0 {
		s.BaseSize = def.BaseSize
	}
	if s.LineHeight <= 0 {
		s.LineHeight = def.LineHeight
	}
	classes := def.Classes
	maps.Copy(classes, s.Classes)
	s.Classes = classes
	return s
}
