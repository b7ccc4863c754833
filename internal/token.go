package internal

import "sync"

// CancelToken is a one-shot abort signal. It can be attached to a Cell,
// Effect, or Scope; firing it (or having
// already fired at attach time) disposes the owning primitive.
type CancelToken struct {
	id       uint64
	mu       sync.Mutex
	aborted  bool
	handlers []func()
}

// NewCancelToken creates a live (non-aborted) cancellation token.
func NewCancelToken() *CancelToken {
	return &CancelToken{id: NextID()}
}

// Aborted reports whether the token has fired.
func (t *CancelToken) Aborted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.aborted
}

// Abort fires the token. Idempotent: only the first call runs handlers.
func (t *CancelToken) Abort() {
	t.mu.Lock()
	if t.aborted {
		t.mu.Unlock()
		return
	}
	t.aborted = true
	handlers := t.handlers
	t.handlers = nil
	t.mu.Unlock()

	logCancellation("abort", t.id)
	for _, h := range handlers {
		h()
	}
}

// OnAbort registers a one-shot disposer. If the token has already aborted,
// the handler runs immediately — both the already-aborted and
// becomes-aborted cases must terminate the owning primitive.
func (t *CancelToken) OnAbort(fn func()) {
	t.mu.Lock()
	if t.aborted {
		t.mu.Unlock()
		fn()
		return
	}
	t.handlers = append(t.handlers, fn)
	t.mu.Unlock()
}
