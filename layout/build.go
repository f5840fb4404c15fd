package layout

// Constructors used by the builders. All of them drop nil items so optional
// parts can be passed in directly.

func NewText(value string) *Text {
	return &Text{Value: value}
}

func Title(value string) *Text {
	return &Text{Value: value, Class: ClassTitle, Align: AlignCenter}
}

func Subtitle(value string) *Text {
	return &Text{Value: value, Class: ClassSubtitle, Align: AlignCenter}
}

func Bold(value string) *Text {
	return &Text{Value: value, Bold: true}
}

func Small(value string) *Text {
	return &Text{Value: value, Class: ClassSmall}
}

func Cell(value string) *Text {
	return &Text{Value: value, Class: ClassTableCell}
}

func RightCell(value string) *Text {
	return &Text{Value: value, Class: ClassTableCell, Align: AlignRight}
}

// Compact returns items without nils.
func Compact(items ...Node) []Node {
	out := make([]Node, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

func VStack(items ...Node) *Stack {
	return &Stack{Direction: Vertical, Items: Compact(items...)}
}

func HStack(items ...Node) *Stack {
	return &Stack{Direction: Horizontal, Items: Compact(items...), Gap: 4}
}

// NewSection always returns section, even an empty one. Use OptionalSection
// for parts of the document which may be absent.
func NewSection(id, title string, items ...Node) *Section {
	return &Section{ID: id, Title: title, Items: Compact(items...)}
}

// OptionalSection returns nil when there is nothing to put into section.
func OptionalSection(id, title string, items ...Node) Node {
	compact := Compact(items...)
	if len(compact) == 0 {
		return nil
	}
	return &Section{ID: id, Title: title, Items: compact}
}

// OptionalStack returns nil for empty stacks.
func OptionalStack(items ...Node) Node {
	compact := Compact(items...)
	if len(compact) == 0 {
		return nil
	}
	return &Stack{Direction: Vertical, Items: compact}
}

// OptionalTable returns nil when table has no rows.
func OptionalTable(columns []Column, rows [][]Node) Node {
	if len(rows) == 0 {
		return nil
	}
	return &Table{Columns: columns, Rows: rows, Borders: true}
}
