package vm

// ---------------------------------------------------------------------------
// Table: the VM's only composite data structure
// ---------------------------------------------------------------------------

// tableKey is the normalized form of a table key. String keys compare by
// content, numeric keys by numeric value (1 and 1.0 are the same key),
// everything else by value identity.
type tableKey struct {
	kind Type
	num  float64
	str  string
	ref  Value
}

type tableEntry struct {
	key   Value
	value Value
}

// Table is a mutable key→value mapping. Sequence data uses consecutive
// integer keys starting at 1, in the Lua convention.
type Table struct {
	entries map[tableKey]tableEntry
}

// NewTable creates an empty, unregistered table. Most callers want
// ObjectRegistry.NewTable, which also allocates a handle.
func NewTable() *Table {
	return &Table{entries: make(map[tableKey]tableEntry)}
}

// normalizeKey converts a key value to its canonical map key. String
// handles are resolved through the registry so that two handles with equal
// content collide.
func normalizeKey(r *ObjectRegistry, k Value) tableKey {
	switch k.Type() {
	case TypeNumber:
		var f float64
		if k.IsSmallInt() {
			f = float64(k.SmallInt())
		} else {
			f = k.Float64()
		}
		return tableKey{kind: TypeNumber, num: f}
	case TypeString:
		content, _ := r.StringContent(k)
		return tableKey{kind: TypeString, str: content}
	default:
		return tableKey{kind: k.Type(), ref: k}
	}
}

// Set stores value under key. A nil key panics; a nil value deletes the
// entry.
func (t *Table) Set(r *ObjectRegistry, key, value Value) {
	if key == Nil {
		panic("Table.Set: nil key")
	}
	nk := normalizeKey(r, key)
	if value == Nil {
		delete(t.entries, nk)
		return
	}
	t.entries[nk] = tableEntry{key: key, value: value}
}

// Get returns the value stored under key, or Nil if absent.
func (t *Table) Get(r *ObjectRegistry, key Value) Value {
	if key == Nil {
		return Nil
	}
	e, ok := t.entries[normalizeKey(r, key)]
	if !ok {
		return Nil
	}
	return e.value
}

// Len returns the sequence length: the number of consecutive integer keys
// present starting at 1.
func (t *Table) Len(r *ObjectRegistry) int {
	n := 0
	for {
		if t.Get(r, FromSmallInt(int64(n+1))) == Nil {
			return n
		}
		n++
	}
}

// Size returns the total number of entries, sequence and hash alike.
func (t *Table) Size() int {
	return len(t.entries)
}

// ForEach calls fn for every key/value pair until fn returns false.
// Iteration order is unspecified.
func (t *Table) ForEach(fn func(key, value Value) bool) {
	for _, e := range t.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}
