/*
Package persistent provides immutable persistent data structures, i.e. data
structures which can be copied and modified efficiently, leaving the original
unchanged. Functional programming languages like Lisp have long relied on
using them.

Immutable data structures in many cases offer benefits over mutable data
structures in terms of concurrent access and functional reasoning. *Persistent*
immutable data-structures offer structural sharing, which means that if two
data structures are mostly copies of each other, most of the memory they take
up will be shared between them. This implies that making copies of an immutable
data structure is relatively cheap in terms of space- and time-complexity.

The core of this module is the vector sub-package, a persistent vector with
effectively constant-time access, update, append and removal of the last
element.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package persistent
