// Package ptr provides helpers for optional values held by pointer.
package ptr

// Int returns a pointer to the given int value.
func Int(i int) *int { return &i }

// Deref returns the value p points to, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
