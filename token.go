package reactor

import "github.com/fenwick-rx/reactor/internal"

// CancelToken is a one-shot abort signal that can be attached to a Scope,
// Signal, or Effect via OnAbort; firing it disposes whatever was attached.
type CancelToken struct {
	token *internal.CancelToken
}

// NewCancelToken creates a live (non-aborted) cancellation token.
func NewCancelToken() *CancelToken {
	return &CancelToken{token: internal.NewCancelToken()}
}

// Aborted reports whether the token has already fired.
func (t *CancelToken) Aborted() bool { return t.token.Aborted() }

// Abort fires the token. Idempotent: only the first call runs handlers.
func (t *CancelToken) Abort() { t.token.Abort() }

// OnAbort registers fn to run when the token fires. If it has already
// fired, fn runs immediately.
func (t *CancelToken) OnAbort(fn func()) { t.token.OnAbort(fn) }

// Bind disposes s as soon as the token fires (or immediately, if it has
// already fired).
func (t *CancelToken) Bind(s *Scope) {
	t.OnAbort(func() { s.Dispose() })
}
