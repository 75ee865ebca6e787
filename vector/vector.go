package vector

import (
	"github.com/npillmayer/persistent/maybe"
)

// Vector is an immutable persistent vector. The zero value is a valid empty
// vector; every “mutating” operation returns a new incarnation and leaves the
// receiver untouched, with most of the structure shared between the two.
//
// The last up to 32 elements live in a flat tail buffer; everything before
// them lives in a trie of fanout-32 nodes. shift is 5×(height-1) of that trie,
// i.e. the shift amount applied to an index at the root level, and is 0 while
// the trie is absent or a single leaf.
type Vector[T any] struct {
	length uint32
	shift  uint32
	root   *vnode[T]
	tail   []T
}

// Immutable creates an empty persistent vector.
//
//	vec := vector.Immutable[int]().Push(1).Push(2)
//
func Immutable[T any]() Vector[T] {
	return Vector[T]{}
}

// From creates a persistent vector holding the given elements in order.
// An empty argument list yields the empty vector. The vector is assembled
// through a transient, so construction allocates far less than repeated
// Push calls would.
func From[T any](elems ...T) Vector[T] {
	t := Immutable[T]().AsTransient()
	for _, e := range elems {
		t = t.Push(e)
	}
	return t.AsPersistent()
}

// --- API -------------------------------------------------------------------

// Len returns the number of elements in the vector.
func (v Vector[T]) Len() int {
	return int(v.length)
}

// Last returns the last element of the vector, or Nothing for the empty vector.
func (v Vector[T]) Last() maybe.Maybe[T] {
	if len(v.tail) == 0 {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.tail[len(v.tail)-1])
}

// Get returns the element at index i. It panics if i is out of bounds;
// clients preferring a total read use At instead.
func (v Vector[T]) Get(i int) T {
	assertThat(i >= 0 && uint32(i) < v.length, "vector index out of bounds: %d with length %d", i, v.length)
	if uint32(i) >= tailOffset(v.length) {
		return v.tail[uint32(i)&mask]
	}
	node := v.root
	for level := v.shift; level > 0; level -= bits {
		node = node.children[(uint32(i)>>level)&mask]
	}
	return node.leafs[uint32(i)&mask]
}

// At returns the element at index i, or Nothing if i is out of bounds.
func (v Vector[T]) At(i int) maybe.Maybe[T] {
	if i < 0 || uint32(i) >= v.length {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.Get(i))
}

// Set returns a new vector with the element at index i replaced by value.
// Only the nodes on the path from the root to the element's leaf are copied;
// all sibling subtrees are shared with the receiver. Set panics if i is out
// of bounds.
func (v Vector[T]) Set(i int, value T) Vector[T] {
	assertThat(i >= 0 && uint32(i) < v.length, "vector index out of bounds: %d with length %d", i, v.length)
	if uint32(i) >= tailOffset(v.length) {
		newTail := cloneTail(v.tail, len(v.tail))
		newTail[uint32(i)&mask] = value
		return Vector[T]{length: v.length, shift: v.shift, root: v.root, tail: newTail}
	}
	newRoot := v.root.clone()
	node := newRoot
	for level := v.shift; level > 0; level -= bits {
		subidx := (uint32(i) >> level) & mask
		child := node.children[subidx].clone()
		node.children[subidx] = child
		node = child
	}
	node.leafs[uint32(i)&mask] = value
	return Vector[T]{length: v.length, shift: v.shift, root: newRoot, tail: v.tail}
}

// Push returns a new vector with value appended at the end. Appending is
// amortized O(1): most pushes only copy the tail buffer, and the full tail
// is moved into the trie as a complete leaf once per 32 pushes.
func (v Vector[T]) Push(value T) Vector[T] {
	if uint32(len(v.tail)) < degree { // just append value to tail
		tracer().Debugf("tail not full, appending %v to %v", value, v.tail)
		newTail := cloneTail(v.tail, len(v.tail)+1)
		newTail[len(newTail)-1] = value
		return Vector[T]{length: v.length + 1, shift: v.shift, root: v.root, tail: newTail}
	}
	// tail is full ⇒ have to move tail into the trie
	newTail := []T{value}
	assertThat(v.length >= degree, "inconsistency: vector.length expected to be ≥ degree")
	if v.length == degree { // no trie yet ⇒ tail becomes the root leaf
		assertThat(v.root == nil, "inconsistency: vector.root expected to be nil")
		return Vector[T]{length: v.length + 1, shift: 0, root: newLeaf(v.tail), tail: newTail}
	}
	if (v.length >> bits) > (1 << v.shift) { // trie is at capacity ⇒ grow one level
		tracer().Debugf("trie is full, growing to shift %d", v.shift+bits)
		newRoot := emptyNode[T]()
		newRoot.children[0] = v.root
		newRoot.children[1] = newPath(nil, v.shift, v.tail)
		return Vector[T]{length: v.length + 1, shift: v.shift + bits, root: newRoot, tail: newTail}
	}
	// still space in the trie ⇒ insert the tail as a new leaf
	return Vector[T]{length: v.length + 1, shift: v.shift, root: v.pushLeaf(v.length - 1), tail: newTail}
}

// pushLeaf copies the nodes along the path for index i and hangs the full
// tail in as a new leaf, synthesizing empty intermediate nodes where the
// path does not exist yet.
func (v Vector[T]) pushLeaf(i uint32) *vnode[T] {
	newRoot := v.root.clone()
	node := newRoot
	for level := v.shift; level > bits; level -= bits {
		subidx := (i >> level) & mask
		child := node.children[subidx]
		if child == nil {
			node.children[subidx] = newPath(nil, level-bits, v.tail)
			return newRoot
		}
		child = child.clone()
		node.children[subidx] = child
		node = child
	}
	node.children[(i>>bits)&mask] = newLeaf(v.tail)
	return newRoot
}

// Pop returns a new vector with the last element removed. It panics for the
// empty vector. Removal is symmetric to Push in structure and cost: most
// pops only shorten the tail, and once per 32 pops the rightmost trie leaf
// is promoted to be the new tail.
func (v Vector[T]) Pop() Vector[T] {
	assertThat(v.length > 0, "attempt to remove item from empty vector")
	if v.length == 1 {
		return Vector[T]{}
	}
	if (v.length-1)&mask > 0 { // tail keeps at least one element
		newTail := cloneTail(v.tail, len(v.tail)-1)
		return Vector[T]{length: v.length - 1, shift: v.shift, root: v.root, tail: newTail}
	}
	// tail would drain ⇒ promote the rightmost trie leaf to be the new tail
	newTrieSize := v.length - degree - 1 // trie content after the pop, minus the new tail
	if newTrieSize == 0 {                // root vanishes into the tail
		tracer().Debugf("trie leaf becomes tail, vector is tail-only again")
		return Vector[T]{length: degree, shift: 0, root: nil, tail: v.root.leafs}
	}
	if newTrieSize == 1<<v.shift { // can lower the height
		return v.lowerTrie()
	}
	return v.popTrie()
}

// lowerTrie shrinks the trie by one level: the old root's first child becomes
// the new root, and the leftmost leaf below its second child is recovered as
// the new tail.
func (v Vector[T]) lowerTrie() Vector[T] {
	tracer().Debugf("trie height no longer needed, lowering to shift %d", v.shift-bits)
	lowerShift := v.shift - bits
	newRoot := v.root.children[0]
	node := v.root.children[1]
	for level := lowerShift; level > 0; level -= bits {
		node = node.children[0]
	}
	return Vector[T]{length: v.length - 1, shift: lowerShift, root: newRoot, tail: node.leafs}
}

// popTrie removes the rightmost leaf from the trie and promotes it to be the
// new tail. Nodes along the rightmost path are copied down to the fork point,
// the highest level at which the bit patterns of the new trie size and the
// new trie size minus one differ; there the now-empty slot is cleared.
func (v Vector[T]) popTrie() Vector[T] {
	newTrieSize := v.length - degree - 1
	forkPoint := newTrieSize ^ (newTrieSize - 1) // where does the node-path fork?
	var forked bool
	newRoot := v.root.clone()
	node := newRoot
	for level := v.shift; level > 0; level -= bits {
		subidx := (newTrieSize >> level) & mask
		child := node.children[subidx]
		switch {
		case forked: // below the fork: just walk down to the leaf
			node = child
		case (forkPoint >> level) != 0: // at the fork: clear the slot
			forked = true
			node.children[subidx] = nil
			node = child
		default: // above the fork: copy the path
			child = child.clone()
			node.children[subidx] = child
			node = child
		}
	}
	return Vector[T]{length: v.length - 1, shift: v.shift, root: newRoot, tail: node.leafs}
}
