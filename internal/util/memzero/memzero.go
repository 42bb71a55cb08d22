// Package memzero provides best-effort wiping of sensitive byte
// slices. The compiler may still keep copies in registers or on the
// stack; this only shortens the window, it cannot eliminate it.
package memzero

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
