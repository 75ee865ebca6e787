package vector

import (
	"fmt"
	"strings"
)

// The fanout of 32 is load-bearing for all of the shift arithmetic in this
// package: every level of the trie consumes exactly 'bits' bits of an index.
const (
	bits   uint32 = 5           // number of index bits consumed per level
	degree uint32 = 1 << bits   // fanout of trie nodes: 32
	mask   uint32 = degree - 1  // bit pattern of trailing 1s of length 'bits'
)

// tailOffset returns the number of elements of a vector of the given length
// which live in the trie; elements at or above this index live in the tail.
func tailOffset(length uint32) uint32 {
	if length < degree {
		return 0
	}
	return (length - 1) &^ mask
}

// tailSize returns the number of elements in the tail of a vector of the
// given length. The tail holds between 1 and 32 elements, except for the
// empty vector.
func tailSize(length uint32) uint32 {
	if length == 0 {
		return 0
	}
	return ((length - 1) & mask) + 1
}

// vnode represents a node in the trie a vector is made of. Nodes above the
// leaf level link to children; leaf nodes carry elements in leafs. A node
// never does both.
//
// edit is non-nil for nodes created during a transient build and identifies
// their owner; persistent operations leave it nil (see transient.go).
type vnode[T any] struct {
	children []*vnode[T]
	leafs    []T
	edit     *int32
}

func emptyNode[T any]() *vnode[T] {
	return &vnode[T]{
		children: make([]*vnode[T], degree),
	}
}

// newLeaf copies tail into a fresh leaf node.
func newLeaf[T any](tail []T) *vnode[T] {
	l := make([]T, len(tail))
	copy(l, tail)
	return &vnode[T]{leafs: l}
}

// clone produces a copy of a node, sharing all of its children resp. elements.
func (node vnode[T]) clone() *vnode[T] {
	n := &vnode[T]{}
	if node.leafs != nil {
		n.leafs = make([]T, len(node.leafs))
		copy(n.leafs, node.leafs)
	}
	if node.children != nil {
		n.children = make([]*vnode[T], len(node.children))
		copy(n.children, node.children)
	}
	return n
}

// editable clones a node and marks the clone as owned by a transient.
func (node vnode[T]) editable(edit *int32) *vnode[T] {
	n := node.clone()
	n.edit = edit
	return n
}

// cloneTail copies a tail buffer into a fresh buffer of length l.
func cloneTail[T any](tail []T, l int) []T {
	newTail := make([]T, l)
	if tail != nil {
		copy(newTail, tail[:min(l, len(tail))])
	}
	return newTail
}

// cloneTailCap copies a tail buffer into a fresh buffer with room for a full
// chunk, for in-place appending by transients.
func cloneTailCap[T any](tail []T, l int) []T {
	newTail := make([]T, l, degree)
	if tail != nil {
		copy(newTail, tail[:min(l, len(tail))])
	}
	return newTail
}

// newPath builds a chain of nodes from the given level count down to a leaf
// holding tail, always branching through slot 0. This is the single place in
// the trie engine where internal nodes are synthesized rather than copied.
func newPath[T any](edit *int32, levels uint32, tail []T) *vnode[T] {
	node := newLeaf(tail)
	node.edit = edit
	for level := levels; level > 0; level -= bits {
		wrap := emptyNode[T]()
		wrap.edit = edit
		wrap.children[0] = node
		node = wrap
	}
	return node
}

func (node vnode[T]) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	if node.leafs != nil {
		for i, l := range node.leafs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(fmt.Sprintf("%v", l))
		}
	} else {
		for i, c := range node.children {
			if i > 0 {
				b.WriteByte(',')
			}
			if c == nil {
				b.WriteByte('_')
			} else {
				b.WriteString("▪︎")
			}
		}
	}
	b.WriteByte(']')
	return b.String()
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("vector: "+msg, msgargs...)
		panic(msg)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
