package layout

import (
	"strconv"
	"strings"

	"ksefpdf/common"
)

// PageSize is physical page size in millimeters, portrait dimensions.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

var PageA4 = PageSize{Name: "A4", Width: 210, Height: 297}

type Margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

type Page struct {
	Size        PageSize
	Orientation common.Orientation
	Margins     Margins
}

// Dimensions returns page width and height taking orientation into account.
func (p Page) Dimensions() (float64, float64) {
	if p.Orientation == common.OrientationLandscape {
		return p.Size.Height, p.Size.Width
	}
	return p.Size.Width, p.Size.Height
}

// Style is a set of text attributes, sizes are in points.
type Style struct {
	Size        float64
	Bold        bool
	Italic      bool
	SpaceBefore float64
	SpaceAfter  float64
}

// StyleSheet is a global style block: font family, base size and per class
// overrides.
type StyleSheet struct {
	Font       string
	BaseSize   float64
	LineHeight float64
	Classes    map[Class]Style
}

// Resolve combines class definition with run level attributes.
func (s StyleSheet) Resolve(t *Text) Style {
	st, ok := s.Classes[t.Class]
	if !ok || st.Size == 0 {
		st.Size = s.BaseSize
	}
	st.Bold = st.Bold || t.Bold
	st.Italic = st.Italic || t.Italic
	return st
}

// Footer is a rule producing page footer. Template may refer to {page} and
// {pages}, actual numbers are known only to renderer after pagination.
type Footer struct {
	Template string
	Class    Class
	Align    Align
}

// Resolve expands footer template. Total is a string so renderers which
// back-patch page count may pass their own alias.
func (f Footer) Resolve(page int, total string) string {
	return strings.NewReplacer("{page}", strconv.Itoa(page), "{pages}", total).Replace(f.Template)
}

// Bitmap is PNG encoded picture with its size in pixels.
type Bitmap struct {
	Data   []byte
	Width  int
	Height int
}

// Aspect returns height to width ratio, zero for empty bitmap.
func (b Bitmap) Aspect() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return float64(b.Height) / float64(b.Width)
}

// Document is complete layout handed to renderer.
type Document struct {
	Title   string
	Kind    common.DocumentType
	Page    Page
	Styles  StyleSheet
	Footer  *Footer
	Content Node
	// Images referenced by Image nodes, keyed by Ref.
	Images map[string]Bitmap
}
