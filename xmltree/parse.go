package xmltree

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"ksefpdf/common"
)

// Parse reads XML document and returns raw tree. The returned node is a
// synthetic top level holding the document root element under its name, so
// callers can inspect top level keys. Element and attribute names are kept
// exactly as written, including namespace prefixes; use Normalize to strip
// them.
func Parse(r io.Reader) (*Node, error) {
	return parse(r, charset.NewReaderLabel)
}

// ParseUTF8 is Parse for input which was already converted to UTF-8. Encoding
// named by XML declaration is ignored.
func ParseUTF8(r io.Reader) (*Node, error) {
	return parse(r, func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	})
}

func parse(r io.Reader, cr func(string, io.Reader) (io.Reader, error)) (*Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: cr,
		ValidateInput: false,
		Permissive:    true,
	}

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: unable to read XML: %w", common.ErrMalformedInput, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", common.ErrMalformedInput)
	}
	return NewNode().Append(root.FullTag(), fromElement(root)), nil
}

// ParseString is a convenience wrapper mostly useful in tests.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func fromElement(el *etree.Element) *Node {
	n := NewLeaf(strings.TrimSpace(el.Text()))
	for _, a := range el.Attr {
		n.SetAttr(a.FullKey(), a.Value)
	}
	for _, child := range el.ChildElements() {
		n.Append(child.FullTag(), fromElement(child))
	}
	return n
}
