// Package layout defines the render engine agnostic document tree produced by
// the builders: styled text runs, tables, stacks and titled sections, plus
// page level directives kept on Document. Nodes carry only structure and
// styling intent, binary data lives in Document.Images.
package layout

// Node is any element of the layout tree. The set of implementations is
// closed: *Text, *Table, *Stack, *Section, *QRCode, *Image, *Spacer and
// *Rule.
type Node interface {
	isNode()
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Class names style definition from the document StyleSheet.
type Class string

const (
	ClassBody        Class = ""
	ClassTitle       Class = "title"
	ClassSubtitle    Class = "subtitle"
	ClassHeading     Class = "heading"
	ClassLabel       Class = "label"
	ClassTableHeader Class = "table-header"
	ClassTableCell   Class = "table-cell"
	ClassSmall       Class = "small"
)

// Text is a styled run of text.
type Text struct {
	Value        string
	Class        Class
	Bold         bool
	Italic       bool
	Align        Align
	MarginTop    float64
	MarginBottom float64
}

// Column describes table column. Width is relative weight, zero means equal
// share of what is left.
type Column struct {
	Header string
	Width  float64
	Align  Align
}

// Table is a grid of cells, every cell is a Node on its own (usually *Text,
// nested tables are allowed). Header row is rendered when any column has
// a header.
type Table struct {
	Columns []Column
	Rows    [][]Node
	Borders bool
}

type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// Stack lays out its items one after another, horizontal stacks split
// available width evenly.
type Stack struct {
	Direction Direction
	Items     []Node
	Gap       float64
}

// Section is a titled group of nodes. ID is stable and names legal structure
// the section represents (for example "payment"), so presence of optional
// parts of the document can be checked on the tree.
type Section struct {
	ID    string
	Title string
	Items []Node
}

// QRCode asks renderer to draw QR code encoding Payload. Size is in page
// units, zero lets renderer decide.
type QRCode struct {
	Payload string
	Caption string
	Size    float64
}

// Image places picture from Document.Images. Width is in page units, height
// follows picture aspect ratio.
type Image struct {
	Ref   string
	Width float64
	Align Align
}

// Spacer is vertical white space.
type Spacer struct {
	Height float64
}

// Rule is a horizontal line across available width.
type Rule struct{}

func (*Text) isNode()    {}
func (*Table) isNode()   {}
func (*Stack) isNode()   {}
func (*Section) isNode() {}
func (*QRCode) isNode()  {}
func (*Image) isNode()   {}
func (*Spacer) isNode()  {}
func (*Rule) isNode()    {}

// HasHeader reports whether table header row should be rendered.
func (t *Table) HasHeader() bool {
	for _, c := range t.Columns {
		if c.Header != "" {
			return true
		}
	}
	return false
}
