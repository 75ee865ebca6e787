/*
Package maybe provides an optional-value type in the tradition of functional
languages: a Maybe either carries a value (Just) or carries nothing (Nothing).
It is the return type of choice for partial reads, e.g. asking a container
for an element which may not be there.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package maybe

// Maybe represents an optional value of type T.
type Maybe[T any] interface {
	Match() Matcher[T]
	Unwrap() (T, bool)
	WithDefault(T) T
	Map(func(T) T) Maybe[T]
}

type maybe[T any] struct {
	value T
	tag   bool
}

// Just wraps a value.
func Just[T any](x T) Maybe[T] {
	return maybe[T]{value: x, tag: true}
}

// Nothing is the absent value.
func Nothing[T any]() Maybe[T] {
	return maybe[T]{tag: false}
}

func (m maybe[T]) Match() Matcher[T] {
	return matcher[T]{m: m}
}

// Unwrap returns the carried value together with ok=true, or the zero value
// for T together with ok=false.
func (m maybe[T]) Unwrap() (T, bool) {
	return m.value, m.tag
}

// WithDefault returns the carried value, or def for Nothing.
func (m maybe[T]) WithDefault(def T) T {
	if m.tag {
		return m.value
	}
	return def
}

// Map applies f to the carried value; Nothing stays Nothing.
func (m maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.tag {
		return Just(f(m.value))
	}
	return m
}

// AndThen chains a function which itself may come up empty. Nothing is
// propagated without calling f.
func AndThen[T, S any](f func(T) Maybe[S], x Maybe[T]) Maybe[S] {
	if v, ok := x.Unwrap(); ok {
		return f(v)
	}
	return Nothing[S]()
}

// Map applies f to the value carried by x; Nothing stays Nothing. This is
// the package-level variant of Maybe.Map, free to change the value type.
func Map[T, S any](f func(T) S, x Maybe[T]) Maybe[S] {
	if v, ok := x.Unwrap(); ok {
		return Just(f(v))
	}
	return Nothing[S]()
}

// --- Matching --------------------------------------------------------------

// Matcher supports a switch-based pattern matching idiom:
//
//	var v int
//	switch m := x.Match(); m {
//	case m.Just(&v):
//	    // use v
//	case m.Nothing():
//	    // absent
//	}
//
type Matcher[T any] interface {
	Just(*T) Matcher[T]
	Nothing() Matcher[T]
}

type matcher[T any] struct {
	m maybe[T]
}

func (mm matcher[T]) Just(v *T) Matcher[T] {
	if mm.m.tag {
		*v = mm.m.value
		return mm
	}
	return nil
}

func (mm matcher[T]) Nothing() Matcher[T] {
	if !mm.m.tag {
		return mm
	}
	return nil
}
