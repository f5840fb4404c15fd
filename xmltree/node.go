// Package xmltree turns XML text into a compact tree addressable by tag names
// and strips namespace prefixes from it.
//
// The tree mirrors what KSeF documents need: every element is a Node holding
// its trimmed text, its attributes and its child elements grouped by tag name
// in order of first appearance. Repeated tags form a sequence under the same
// name. All accessors are nil-safe so builders can walk optional structures
// without checking every level.
package xmltree

import (
	"strings"

	"ksefpdf/utils/debug"
)

type Node struct {
	text      string
	attrs     map[string]string
	attrOrder []string
	children  map[string][]*Node
	order     []string
}

// NewNode returns empty branch node.
func NewNode() *Node {
	return &Node{}
}

// NewLeaf returns node with text content and no children.
func NewLeaf(text string) *Node {
	return &Node{text: text}
}

// Append adds child under name keeping sequence order, returns n for chaining.
func (n *Node) Append(name string, child *Node) *Node {
	if n.children == nil {
		n.children = make(map[string][]*Node)
	}
	if _, exists := n.children[name]; !exists {
		n.order = append(n.order, name)
	}
	n.children[name] = append(n.children[name], child)
	return n
}

// SetAttr sets attribute value, returns n for chaining.
func (n *Node) SetAttr(name, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	if _, exists := n.attrs[name]; !exists {
		n.attrOrder = append(n.attrOrder, name)
	}
	n.attrs[name] = value
	return n
}

// replace puts sequence under name dropping whatever was there before.
func (n *Node) replace(name string, seq []*Node) {
	if n.children == nil {
		n.children = make(map[string][]*Node)
	}
	if _, exists := n.children[name]; !exists {
		n.order = append(n.order, name)
	}
	n.children[name] = seq
}

// Text returns element text as it was read.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// Attr returns attribute value or empty string.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.attrs[name]
}

// Attrs returns copy of attribute map.
func (n *Node) Attrs() map[string]string {
	if n == nil || len(n.attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Child returns first child element with the given name.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	if seq := n.children[name]; len(seq) > 0 {
		return seq[0]
	}
	return nil
}

// All returns all child elements with the given name in document order.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	return n.children[name]
}

// Has reports whether child element with the given name exists.
func (n *Node) Has(name string) bool {
	return len(n.All(name)) > 0
}

// Path descends through first children with the given names.
func (n *Node) Path(names ...string) *Node {
	cur := n
	for _, name := range names {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Value returns trimmed text of the element at path, empty when absent.
func (n *Node) Value(names ...string) string {
	return strings.TrimSpace(n.Path(names...).Text())
}

// Keys returns child element names in order of first appearance.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Len returns number of distinct child tags.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.order)
}

// IsLeaf reports whether node has no child elements.
func (n *Node) IsLeaf() bool {
	return n == nil || len(n.order) == 0
}

// Equal compares two trees structurally: text, attributes, child names, their
// order and sequence lengths.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.text != b.text || len(a.attrs) != len(b.attrs) || len(a.order) != len(b.order) {
		return false
	}
	for k, v := range a.attrs {
		if bv, ok := b.attrs[k]; !ok || bv != v {
			return false
		}
	}
	for i, name := range a.order {
		if b.order[i] != name {
			return false
		}
		as, bs := a.children[name], b.children[name]
		if len(as) != len(bs) {
			return false
		}
		for j := range as {
			if !Equal(as[j], bs[j]) {
				return false
			}
		}
	}
	return true
}

// String returns readable dump of the tree for debug reports.
func (n *Node) String() string {
	if n == nil {
		return "<nil Node>"
	}
	tw := debug.NewTreeWriter()
	dump(tw, 0, n)
	return tw.String()
}

func dump(tw *debug.TreeWriter, depth int, n *Node) {
	tw.Attrs(depth, n.attrs)
	if n.text != "" {
		tw.TextBlock(depth, "#text", n.text)
	}
	for _, name := range n.order {
		seq := n.children[name]
		for i, child := range seq {
			if len(seq) > 1 {
				tw.Line(depth, "%s[%d]", name, i)
			} else {
				tw.Line(depth, "%s", name)
			}
			dump(tw, depth+1, child)
		}
	}
}
