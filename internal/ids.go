package internal

import "sync/atomic"

var idCounter uint64

// NextID returns a process-unique, monotonically increasing identifier.
// Used for Cell and Scope identity.
func NextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}
