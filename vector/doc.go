/*
Package vector implements an immutable persistent vector, designed for use-cases
similar to Go slices.

An immutable persistent vector has copy-on-write behaviour: Each “modification” of the vector
(replacement, appending or removal of the last element) creates a copy, leaving the original
unmodified. Under the hood, copy-on-write retains most of the memory held by the original, and
creates a new incarnation of parts of the structure only. Thus, most of the structure/memory
is shared between original and copy, transparently to clients.

Vectors are backed by a trie of nodes with a fixed fanout of 32, plus a small
“tail” buffer holding the last few elements. Access, replacement, appending and
removal of the last element all run in O(log32 n), which is effectively constant
for realistic vector sizes; appending and removal are amortized O(1) thanks to
the tail.

Immutable vectors are inherently concurrency-safe. For bulk construction, a
transient twin type trades this safety for reduced allocation (see TVector).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persistent.vector'.
func tracer() tracing.Trace {
	return tracing.Select("persistent.vector")
}
