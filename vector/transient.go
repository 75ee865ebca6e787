package vector

import (
	"sync/atomic"
)

// TVector is a transient vector: a mutable twin of Vector intended for bulk
// construction and batched edits. Its operations implement the identical
// branching logic as their persistent counterparts, but mutate nodes owned
// by the transient in place instead of copying them.
//
// A transient is entered through Vector.AsTransient and left through
// AsPersistent; afterwards any further use of the transient panics. A
// transient must be treated as exclusively owned by a single goroutine for
// the duration of the build — unlike persistent vectors, transients are not
// safe for concurrent use.
type TVector[T any] struct {
	length uint32
	shift  uint32
	root   *vnode[T]
	tail   []T
	edit   *int32 // ownership token; shared with every node this transient may mutate
}

// AsTransient returns a mutable version of the vector. The vector itself
// remains valid and unchanged: nodes are still shared with the transient and
// only get cloned the first time the transient touches them.
func (v Vector[T]) AsTransient() *TVector[T] {
	edit := new(int32)
	atomic.StoreInt32(edit, 1)
	return &TVector[T]{
		length: v.length,
		shift:  v.shift,
		root:   v.root,
		tail:   cloneTailCap(v.tail, len(v.tail)),
		edit:   edit,
	}
}

// AsPersistent freezes the transient into an ordinary persistent vector.
// Any further operation on the transient panics.
func (t *TVector[T]) AsPersistent() Vector[T] {
	t.ensureEditable()
	atomic.StoreInt32(t.edit, 0)
	return Vector[T]{length: t.length, shift: t.shift, root: t.root, tail: cloneTail(t.tail, len(t.tail))}
}

// Len returns the number of elements in the transient vector.
func (t *TVector[T]) Len() int {
	return int(t.length)
}

// Get returns the element at index i. It panics if i is out of bounds or if
// the transient has been frozen.
func (t *TVector[T]) Get(i int) T {
	t.ensureEditable()
	assertThat(i >= 0 && uint32(i) < t.length, "vector index out of bounds: %d with length %d", i, t.length)
	if uint32(i) >= tailOffset(t.length) {
		return t.tail[uint32(i)&mask]
	}
	node := t.root
	for level := t.shift; level > 0; level -= bits {
		node = node.children[(uint32(i)>>level)&mask]
	}
	return node.leafs[uint32(i)&mask]
}

// Set replaces the element at index i in place and returns the receiver.
// It panics if i is out of bounds; the vector is untouched in that case.
func (t *TVector[T]) Set(i int, value T) *TVector[T] {
	t.ensureEditable()
	assertThat(i >= 0 && uint32(i) < t.length, "vector index out of bounds: %d with length %d", i, t.length)
	if uint32(i) >= tailOffset(t.length) {
		t.tail[uint32(i)&mask] = value
		return t
	}
	t.root = t.ensureEditableNode(t.root)
	node := t.root
	for level := t.shift; level > 0; level -= bits {
		subidx := (uint32(i) >> level) & mask
		child := t.ensureEditableNode(node.children[subidx])
		node.children[subidx] = child
		node = child
	}
	node.leafs[uint32(i)&mask] = value
	return t
}

// Push appends value in place and returns the receiver.
func (t *TVector[T]) Push(value T) *TVector[T] {
	t.ensureEditable()
	if uint32(len(t.tail)) < degree { // room in tail
		t.tail = append(t.tail, value)
		t.length++
		return t
	}
	// tail is full ⇒ have to move tail into the trie
	switch {
	case t.length == degree: // no trie yet ⇒ tail becomes the root leaf
		leaf := newLeaf(t.tail)
		leaf.edit = t.edit
		t.root = leaf
	case (t.length >> bits) > (1 << t.shift): // trie is at capacity ⇒ grow one level
		tracer().Debugf("trie is full, growing to shift %d", t.shift+bits)
		newRoot := emptyNode[T]()
		newRoot.edit = t.edit
		newRoot.children[0] = t.root
		newRoot.children[1] = newPath(t.edit, t.shift, t.tail)
		t.root = newRoot
		t.shift += bits
	default: // still space in the trie ⇒ insert the tail as a new leaf
		t.root = t.pushLeaf(t.length - 1)
	}
	t.tail = make([]T, 1, degree)
	t.tail[0] = value
	t.length++
	return t
}

func (t *TVector[T]) pushLeaf(i uint32) *vnode[T] {
	newRoot := t.ensureEditableNode(t.root)
	node := newRoot
	for level := t.shift; level > bits; level -= bits {
		subidx := (i >> level) & mask
		child := node.children[subidx]
		if child == nil {
			node.children[subidx] = newPath(t.edit, level-bits, t.tail)
			return newRoot
		}
		child = t.ensureEditableNode(child)
		node.children[subidx] = child
		node = child
	}
	leaf := newLeaf(t.tail)
	leaf.edit = t.edit
	node.children[(i>>bits)&mask] = leaf
	return newRoot
}

// Pop removes the last element in place and returns the receiver. It panics
// for the empty vector; the vector is untouched in that case.
func (t *TVector[T]) Pop() *TVector[T] {
	t.ensureEditable()
	assertThat(t.length > 0, "attempt to remove item from empty vector")
	if t.length == 1 {
		t.length = 0
		t.shift = 0
		t.root = nil
		t.tail = t.tail[:0]
		return t
	}
	if (t.length-1)&mask > 0 { // tail keeps at least one element
		t.tail = t.tail[:len(t.tail)-1]
		t.length--
		return t
	}
	// tail would drain ⇒ promote the rightmost trie leaf to be the new tail
	newTrieSize := t.length - degree - 1
	switch {
	case newTrieSize == 0: // root vanishes into the tail
		t.tail = cloneTailCap(t.root.leafs, int(degree))
		t.root = nil
		t.shift = 0
	case newTrieSize == 1<<t.shift: // can lower the height
		t.lowerTrie()
	default:
		t.popTrie(newTrieSize)
	}
	t.length--
	return t
}

func (t *TVector[T]) lowerTrie() {
	tracer().Debugf("trie height no longer needed, lowering to shift %d", t.shift-bits)
	lowerShift := t.shift - bits
	newRoot := t.root.children[0]
	node := t.root.children[1]
	for level := lowerShift; level > 0; level -= bits {
		node = node.children[0]
	}
	t.root = newRoot
	t.shift = lowerShift
	t.tail = cloneTailCap(node.leafs, len(node.leafs))
}

func (t *TVector[T]) popTrie(newTrieSize uint32) {
	forkPoint := newTrieSize ^ (newTrieSize - 1)
	var forked bool
	newRoot := t.ensureEditableNode(t.root)
	node := newRoot
	for level := t.shift; level > 0; level -= bits {
		subidx := (newTrieSize >> level) & mask
		child := node.children[subidx]
		switch {
		case forked: // below the fork: just walk down to the leaf
			node = child
		case (forkPoint >> level) != 0: // at the fork: clear the slot
			forked = true
			node.children[subidx] = nil
			node = child
		default: // above the fork: make the path editable
			child = t.ensureEditableNode(child)
			node.children[subidx] = child
			node = child
		}
	}
	t.root = newRoot
	t.tail = cloneTailCap(node.leafs, len(node.leafs))
}

// ensureEditable guards every transient operation against use after freeze.
func (t *TVector[T]) ensureEditable() {
	assertThat(atomic.LoadInt32(t.edit) == 1, "transient vector used after AsPersistent")
}

// ensureEditableNode returns node if this transient already owns it, and an
// owned clone otherwise.
func (t *TVector[T]) ensureEditableNode(node *vnode[T]) *vnode[T] {
	if node.edit == t.edit {
		return node
	}
	return node.editable(t.edit)
}
