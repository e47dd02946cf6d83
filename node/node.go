// Package node provides the record tree built by the extractor.
//
// A Node owns its children; the parent reference is used only to
// ascend when an element closes. Cleared nodes are handed back to an
// Arena so that container nodes are reused from one record to the
// next rather than reallocated.
package node

import "strings"

// Node is one element instance within a record's subtree
type Node struct {
	// Name is the element tag name
	Name string
	// Fields holds captured leaf text by field name
	Fields map[string]string
	// Children are the container children in document order
	Children []*Node

	parent *Node
}

// IterFn is a Node iteration function. Returning a non-nil error
// stops iteration.
type IterFn func(*Node) error

// New returns a new, empty Node
func New(name string) *Node { return &Node{Name: name, Fields: map[string]string{}} }

// Parent returns the node's parent, or nil for a root node
func (n *Node) Parent() *Node { return n.parent }

// Append appends child to n's children and returns child
func (n *Node) Append(child *Node) *Node {
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

// Get returns the value of field, or the empty string if it was never
// captured.
func (n *Node) Get(field string) string {
	if n == nil {
		return ""
	}
	return n.Fields[field]
}

// Has returns true if field was captured on n
func (n *Node) Has(field string) bool {
	if n == nil {
		return false
	}
	_, ok := n.Fields[field]
	return ok
}

// AppendText appends text to field, in arrival order
func (n *Node) AppendText(field, text string) {
	n.Fields[field] += text
}

// Iter calls fn for each child named name, in document order. An
// empty name matches every child.
func (n *Node) Iter(name string, fn IterFn) error {
	for _, child := range n.Children {
		if name != "" && child.Name != name {
			continue
		}
		if err := fn(child); err != nil {
			return err
		}
	}
	return nil
}

// First returns the first child named name, or nil
func (n *Node) First(name string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Empty returns true if n holds no fields and no children
func (n *Node) Empty() bool { return len(n.Fields) == 0 && len(n.Children) == 0 }

// Path returns the slash separated tag path from the root to n
func (n *Node) Path() string {
	var names []string
	for it := n; it != nil; it = it.parent {
		names = append(names, it.Name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(names[i])
	}
	return b.String()
}

// Clear removes all of n's fields and children, recursively, severing
// parent references. If a is non-nil, cleared children are released
// to it for reuse. n's name is kept.
func (n *Node) Clear(a *Arena) {
	for k := range n.Fields {
		delete(n.Fields, k)
	}
	for i, child := range n.Children {
		child.Clear(a)
		n.Children[i] = nil
		if a != nil {
			a.put(child)
		}
	}
	n.Children = n.Children[:0]
	n.parent = nil
}
