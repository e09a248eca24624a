package vm

// ---------------------------------------------------------------------------
// Centralized NaN-boxing marker allocation table
// ---------------------------------------------------------------------------
//
// Every handle-encoded (non-float, non-special) value in the VM uses a
// unique marker byte stored in bits 24-31 of the handle ID. This file is
// the single source of truth for all marker allocations.
//
// To add a new marker:
//   1. Pick the next available value from the table below.
//   2. Define the constant here.
//   3. Add a registry for it in ObjectRegistry and a case in Value.Type.
//
// IMPORTANT: Once assigned, marker values must NEVER change: handle
// values holding them may outlive any single State.

const (
	stringMarker   uint32 = 1 << 24
	tableMarker    uint32 = 2 << 24
	functionMarker uint32 = 3 << 24
	userdataMarker uint32 = 4 << 24
)

// markerMask extracts the marker byte from a handle ID.
const markerMask uint32 = 0xFF << 24

// handleMarker returns the marker byte of a handle value, or 0 if v is not
// a handle.
func handleMarker(v Value) uint32 {
	if !v.IsHandle() {
		return 0
	}
	return v.HandleID() & markerMask
}

// IsString returns true if v is a string handle.
func (v Value) IsString() bool {
	return handleMarker(v) == stringMarker
}

// IsTable returns true if v is a table handle.
func (v Value) IsTable() bool {
	return handleMarker(v) == tableMarker
}

// IsFunction returns true if v is a function handle.
func (v Value) IsFunction() bool {
	return handleMarker(v) == functionMarker
}

// IsUserdata returns true if v is a userdata handle.
func (v Value) IsUserdata() bool {
	return handleMarker(v) == userdataMarker
}
