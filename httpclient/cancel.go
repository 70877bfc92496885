package httpclient

import (
	"context"
	"errors"
	"sync"
)

// Cancel is the reason a request was canceled through its token.
type Cancel struct {
	Message string
}

// Error implements the error interface.
func (c *Cancel) Error() string {
	if c.Message == "" {
		return "request canceled"
	}
	return c.Message
}

// CancelToken is observed by requests. It fires once and stays fired.
type CancelToken struct {
	ctx context.Context
}

// Done is closed when the token fires.
func (t *CancelToken) Done() <-chan struct{} {
	return t.ctx.Done()
}

// Reason returns the cancel reason, or nil while the token has not fired.
func (t *CancelToken) Reason() *Cancel {
	var c *Cancel
	if errors.As(context.Cause(t.ctx), &c) {
		return c
	}
	return nil
}

// CancelSource owns a token and the ability to fire it.
type CancelSource struct {
	Token  *CancelToken
	cancel context.CancelCauseFunc
}

// NewCancelSource creates a source with an unfired token.
func NewCancelSource() *CancelSource {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &CancelSource{Token: &CancelToken{ctx: ctx}, cancel: cancel}
}

// Cancel fires the token. Only the first call sets the reason.
func (s *CancelSource) Cancel(message string) {
	s.cancel(&Cancel{Message: message})
}

var (
	globalMu     sync.RWMutex
	globalSource = NewCancelSource()
)

// GlobalCancelSource returns the source shared by clients in the global scope.
func GlobalCancelSource() *CancelSource {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalSource
}

// RenewGlobalCancel replaces a fired global source so new requests can proceed.
func RenewGlobalCancel() {
	globalMu.Lock()
	globalSource = NewCancelSource()
	globalMu.Unlock()
}

// IsCancel reports whether err was caused by a cancellation.
func IsCancel(err error) bool {
	if err == nil {
		return false
	}
	var c *Cancel
	return errors.As(err, &c) || errors.Is(err, context.Canceled)
}

// bind derives a context that is also canceled when token fires.
// The returned stop func must be called once the request is done.
func bind(ctx context.Context, token *CancelToken) (context.Context, func()) {
	if token == nil {
		return ctx, func() {}
	}
	ctx, cancel := context.WithCancelCause(ctx)
	stopAfter := context.AfterFunc(token.ctx, func() {
		if reason := token.Reason(); reason != nil {
			cancel(reason)
			return
		}
		cancel(context.Canceled)
	})
	return ctx, func() {
		stopAfter()
		cancel(nil)
	}
}

// cancelReason returns the token reason that aborted ctx, if any.
func cancelReason(ctx context.Context) *Cancel {
	var c *Cancel
	if errors.As(context.Cause(ctx), &c) {
		return c
	}
	return nil
}
