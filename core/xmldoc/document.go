package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMissingRoot is returned when a document does not carry the expected root element.
var ErrMissingRoot = errors.New("missing root element")

// Node is one element of a parsed document.
type Node struct {
	Name     string
	Attrs    []xml.Attr
	Children []*Node
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Elements returns the direct children with the given element name, in document order.
func (n *Node) Elements(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first direct child with the given name, or nil.
func (n *Node) First(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Document is a fully loaded source document.
type Document struct {
	Path string
	Root *Node
}

// RootElement returns the document root if it has the expected name.
func (d *Document) RootElement(name string) (*Node, error) {
	if d.Root == nil || d.Root.Name != name {
		return nil, fmt.Errorf("%s: <%s>: %w", d.Path, name, ErrMissingRoot)
	}
	return d.Root, nil
}

// Reader loads documents by path.
type Reader interface {
	Load(path string) (*Document, error)
}

// FileReader reads documents from the local filesystem.
// Each document is read completely before it is parsed.
type FileReader struct{}

// Load implements Reader.
func (FileReader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Document{Path: path, Root: root}, nil
}

// Parse builds the element tree of data. Character data is dropped;
// every value the extractors need lives in attributes.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	return root, nil
}
