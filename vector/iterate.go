package vector

import (
	"fmt"
	"strings"
)

// Iterator walks a vector in index order, lazily producing (index, element)
// pairs. Iterators are cheap: the current 32-element chunk and the ancestor
// nodes on the path to it are cached, and crossing a chunk boundary redescends
// the trie only from the level at which the bit pattern of the boundary index
// changed. This keeps advancing amortized O(1) despite the trie height.
//
// An iterator observes the vector incarnation it was created from; later
// derived incarnations do not show through.
type Iterator[T any] struct {
	vec   Vector[T]
	index uint32
	chunk []T
	stack []*vnode[T] // stack[j] is the cached node at level shift-5j
}

// Iterator creates an iterator positioned before the first element.
func (v Vector[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{vec: v}
}

// Next returns the next (index, element) pair, with ok=false after the last
// element has been produced.
func (it *Iterator[T]) Next() (index int, element T, ok bool) {
	if it.index >= it.vec.length {
		var none T
		return 0, none, false
	}
	if it.index&mask == 0 || it.chunk == nil {
		it.descend()
	}
	i := it.index
	it.index++
	return int(i), it.chunk[i&mask], true
}

// Reset rewinds the iterator to the first element.
func (it *Iterator[T]) Reset() {
	it.index = 0
	it.chunk = nil
	it.stack = nil
}

// descend resolves the chunk holding it.index, which is always a multiple of
// the fanout here. The tail is used directly once the boundary reaches
// tailOffset; otherwise only the levels whose index bits changed since the
// previous boundary are re-walked, reusing the cached ancestors above them.
func (it *Iterator[T]) descend() {
	i := it.index
	if i >= tailOffset(it.vec.length) {
		it.chunk = it.vec.tail
		return
	}
	top := it.vec.shift
	if it.stack == nil {
		it.stack = make([]*vnode[T], it.vec.shift/bits+1)
		it.stack[0] = it.vec.root
	} else if i > 0 {
		diff := i ^ (i - degree) // highest set bit marks the level where the path forks
		top = 0
		for diff>>(top+bits) != 0 {
			top += bits
		}
		if top > it.vec.shift {
			top = it.vec.shift
		}
	}
	for level := top; level > 0; level -= bits {
		j := (it.vec.shift - level) / bits
		it.stack[j+1] = it.stack[j].children[(i>>level)&mask]
	}
	it.chunk = it.stack[it.vec.shift/bits].leafs
}

// --- Derived operations ----------------------------------------------------

// Each calls f for every (index, element) pair in order. Iteration stops
// early as soon as f returns false.
func (v Vector[T]) Each(f func(i int, e T) bool) {
	it := v.Iterator()
	for i, e, ok := it.Next(); ok; i, e, ok = it.Next() {
		if !f(i, e) {
			return
		}
	}
}

// Map returns a new vector holding f(i, e) for every element e at index i.
// For mapping onto a different element type, use the package-level Map.
func (v Vector[T]) Map(f func(i int, e T) T) Vector[T] {
	return Map(v, f)
}

// Filter returns a new vector holding, in order, the elements for which p
// returns true.
func (v Vector[T]) Filter(p func(i int, e T) bool) Vector[T] {
	t := Immutable[T]().AsTransient()
	v.Each(func(i int, e T) bool {
		if p(i, e) {
			t = t.Push(e)
		}
		return true
	})
	return t.AsPersistent()
}

// AsSlice materializes the vector into a dense Go slice copy of all elements
// in order.
func (v Vector[T]) AsSlice() []T {
	out := make([]T, v.length)
	v.Each(func(i int, e T) bool {
		out[i] = e
		return true
	})
	return out
}

func (v Vector[T]) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	v.Each(func(i int, e T) bool {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(fmt.Sprintf("%v", e))
		return true
	})
	b.WriteByte(']')
	return b.String()
}

// Map returns a new vector holding f(i, e) for every element e at index i
// of v.
func Map[T, S any](v Vector[T], f func(i int, e T) S) Vector[S] {
	t := Immutable[S]().AsTransient()
	v.Each(func(i int, e T) bool {
		t = t.Push(f(i, e))
		return true
	})
	return t.AsPersistent()
}

// Reduce folds the vector from the left: it applies f to an accumulator and
// every (index, element) pair in order, starting from zero, and returns the
// final accumulator.
func Reduce[T, A any](v Vector[T], f func(acc A, i int, e T) A, zero A) A {
	acc := zero
	v.Each(func(i int, e T) bool {
		acc = f(acc, i, e)
		return true
	})
	return acc
}

// ReduceWhile folds like Reduce, but f additionally reports whether folding
// shall continue; the accumulator of the last application is returned.
func ReduceWhile[T, A any](v Vector[T], f func(acc A, i int, e T) (A, bool), zero A) A {
	acc := zero
	v.Each(func(i int, e T) bool {
		var cont bool
		acc, cont = f(acc, i, e)
		return cont
	})
	return acc
}
