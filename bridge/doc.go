// Package bridge is the typed bridge between Go's static type system and
// the Selene VM's dynamically-tagged evaluation stack.
//
// Every supported Go type classifies to exactly one value category (see
// KindOfType) in a fixed precedence order. The three stack operations are:
//
//	bridge.Push[T](s, v)   // classify T, push one slot
//	bridge.Get[T](s, idx)  // check category, read one slot, depth unchanged
//	bridge.Pop[T](s)       // Get at the top, then remove exactly one slot
//
// A read whose runtime category disagrees with T's category invokes the
// mismatch handler; the default raises through the VM's error channel and
// performs no implicit cross-category coercion. Composite (table-shaped),
// callable, and opaque categories delegate to registered Marshalers; the
// shape package installs the defaults:
//
//	import _ "github.com/chazu/selene/shape"
//
// The Ref type is the dynamic escape hatch: it captures a stack value
// without committing to a category and re-pushes it verbatim.
package bridge
