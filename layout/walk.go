package layout

import "strings"

// Walk visits node and its descendants depth first in document order. When
// fn returns false children of the current node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Stack:
		for _, it := range v.Items {
			Walk(it, fn)
		}
	case *Section:
		for _, it := range v.Items {
			Walk(it, fn)
		}
	case *Table:
		for _, row := range v.Rows {
			for _, cell := range row {
				Walk(cell, fn)
			}
		}
	}
}

// Texts returns every piece of visible text in the tree: text runs, section
// titles, column headers and QR captions.
func Texts(n Node) []string {
	var out []string
	Walk(n, func(n Node) bool {
		switch v := n.(type) {
		case *Text:
			out = append(out, v.Value)
		case *Section:
			if v.Title != "" {
				out = append(out, v.Title)
			}
		case *Table:
			for _, c := range v.Columns {
				if c.Header != "" {
					out = append(out, c.Header)
				}
			}
		case *QRCode:
			if v.Caption != "" {
				out = append(out, v.Caption)
			}
		}
		return true
	})
	return out
}

// PlainText joins Texts with new lines.
func PlainText(n Node) string {
	return strings.Join(Texts(n), "\n")
}

// Sections returns all sections in the tree, nested ones included.
func Sections(n Node) []*Section {
	var out []*Section
	Walk(n, func(n Node) bool {
		if s, ok := n.(*Section); ok {
			out = append(out, s)
		}
		return true
	})
	return out
}

// FindSection returns first section with given id or nil.
func FindSection(n Node, id string) *Section {
	for _, s := range Sections(n) {
		if s.ID == id {
			return s
		}
	}
	return nil
}
