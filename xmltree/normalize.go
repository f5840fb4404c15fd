package xmltree

import "strings"

// Normalize returns a copy of the tree where every element and attribute name
// is reduced to its local part ("tns:Faktura" becomes "Faktura"). Text and
// structure are preserved. Namespace declarations are dropped, they carry no
// document data.
//
// KSeF schemas never declare two siblings whose names differ only by prefix.
// Should that happen anyway, the one observed later replaces the earlier one.
func Normalize(n *Node) *Node {
	if n == nil {
		return nil
	}

	out := NewLeaf(n.text)
	for _, k := range n.attrOrder {
		if isNamespaceDecl(k) {
			continue
		}
		out.SetAttr(localName(k), n.attrs[k])
	}

	for _, name := range n.order {
		seq := n.children[name]
		norm := make([]*Node, 0, len(seq))
		for _, child := range seq {
			norm = append(norm, Normalize(child))
		}
		out.replace(localName(name), norm)
	}
	return out
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func isNamespaceDecl(name string) bool {
	return name == "xmlns" || strings.HasPrefix(name, "xmlns:")
}
