// Package engine binds the native Tsetlin Machine shared library at runtime.
//
// The library is opened from a caller-supplied directory using the platform's
// loading convention and every primitive is registered against its fixed C
// signature. Machine instances live entirely inside the native library; this
// package only hands out opaque handles and copies tensors across the
// boundary.
package engine
