package vm

import (
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// ObjectRegistry: Unified registry for all VM-local object registries
// ---------------------------------------------------------------------------

// StringObject represents a VM string value. Strings are immutable,
// length-prefixed byte sequences; embedded NUL bytes are legal.
type StringObject struct {
	Content string
}

// FunctionObject wraps a host function callable from the VM.
type FunctionObject struct {
	Name string
	Fn   GoFunction
}

// Userdata holds an opaque host object along with its type registry ID.
type Userdata struct {
	TypeID uint16
	Value  interface{}
}

// ObjectRegistry manages all VM-local registries: strings, tables,
// functions, and userdata. Handle values encode a marker byte plus a
// registry-local ID; the registry resolves IDs back to objects.
type ObjectRegistry struct {
	strings   map[uint32]*StringObject
	stringsMu sync.RWMutex
	stringID  atomic.Uint32

	tables   map[uint32]*Table
	tablesMu sync.RWMutex
	tableID  atomic.Uint32

	functions   map[uint32]*FunctionObject
	functionsMu sync.RWMutex
	functionID  atomic.Uint32

	userdata   map[uint32]*Userdata
	userdataMu sync.RWMutex
	userdataID atomic.Uint32
}

// NewObjectRegistry creates a new ObjectRegistry with all maps initialized.
func NewObjectRegistry() *ObjectRegistry {
	or := &ObjectRegistry{
		strings:   make(map[uint32]*StringObject),
		tables:    make(map[uint32]*Table),
		functions: make(map[uint32]*FunctionObject),
		userdata:  make(map[uint32]*Userdata),
	}

	// Start IDs at 1 (0 could be confused with nil/uninitialized)
	or.stringID.Store(1)
	or.tableID.Store(1)
	or.functionID.Store(1)
	or.userdataID.Store(1)
	return or
}

// rawID strips the marker byte from a handle ID.
func rawID(id uint32) uint32 {
	return id &^ markerMask
}

// ---------------------------------------------------------------------------
// Strings
// ---------------------------------------------------------------------------

// NewString stores a string and returns its handle value.
func (or *ObjectRegistry) NewString(s string) Value {
	id := or.stringID.Add(1)
	or.stringsMu.Lock()
	or.strings[id] = &StringObject{Content: s}
	or.stringsMu.Unlock()
	return FromHandleID(id | stringMarker)
}

// String returns the StringObject for a string handle, or nil.
func (or *ObjectRegistry) String(v Value) *StringObject {
	if !v.IsString() {
		return nil
	}
	or.stringsMu.RLock()
	defer or.stringsMu.RUnlock()
	return or.strings[rawID(v.HandleID())]
}

// StringContent returns the content of a string handle.
func (or *ObjectRegistry) StringContent(v Value) (string, bool) {
	s := or.String(v)
	if s == nil {
		return "", false
	}
	return s.Content, true
}

// ---------------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------------

// NewTable creates an empty table and returns its handle value and the
// table itself.
func (or *ObjectRegistry) NewTable() (Value, *Table) {
	id := or.tableID.Add(1)
	t := NewTable()
	or.tablesMu.Lock()
	or.tables[id] = t
	or.tablesMu.Unlock()
	return FromHandleID(id | tableMarker), t
}

// Table returns the Table for a table handle, or nil.
func (or *ObjectRegistry) Table(v Value) *Table {
	if !v.IsTable() {
		return nil
	}
	or.tablesMu.RLock()
	defer or.tablesMu.RUnlock()
	return or.tables[rawID(v.HandleID())]
}

// ---------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------

// NewFunction stores a host function and returns its handle value.
func (or *ObjectRegistry) NewFunction(name string, fn GoFunction) Value {
	id := or.functionID.Add(1)
	or.functionsMu.Lock()
	or.functions[id] = &FunctionObject{Name: name, Fn: fn}
	or.functionsMu.Unlock()
	return FromHandleID(id | functionMarker)
}

// Function returns the FunctionObject for a function handle, or nil.
func (or *ObjectRegistry) Function(v Value) *FunctionObject {
	if !v.IsFunction() {
		return nil
	}
	or.functionsMu.RLock()
	defer or.functionsMu.RUnlock()
	return or.functions[rawID(v.HandleID())]
}

// ---------------------------------------------------------------------------
// Userdata
// ---------------------------------------------------------------------------

// NewUserdata stores an opaque host object and returns its handle value.
func (or *ObjectRegistry) NewUserdata(typeID uint16, value interface{}) Value {
	id := or.userdataID.Add(1)
	or.userdataMu.Lock()
	or.userdata[id] = &Userdata{TypeID: typeID, Value: value}
	or.userdataMu.Unlock()
	return FromHandleID(id | userdataMarker)
}

// Userdata returns the Userdata for a userdata handle, or nil.
func (or *ObjectRegistry) Userdata(v Value) *Userdata {
	if !v.IsUserdata() {
		return nil
	}
	or.userdataMu.RLock()
	defer or.userdataMu.RUnlock()
	return or.userdata[rawID(v.HandleID())]
}
