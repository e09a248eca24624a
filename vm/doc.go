// Package vm implements the Selene stack virtual machine substrate: a
// NaN-boxed tagged value representation, per-state object registries for
// strings, tables, functions, and userdata, and the 1-based evaluation
// stack that host code pushes to and reads from.
//
// The stack is addressed by position from the bottom (1 = bottom) or by
// negative offset from the top (-1 = top). Host-visible type tags follow
// the conventional stack-VM category set: nil, boolean, number, string,
// table, function, userdata.
//
// Errors raised with State.RaiseError unwind through the VM's own channel
// and are recovered by State.ProtectedCall; they never surface as Go
// panics to code running under a protected call.
package vm
