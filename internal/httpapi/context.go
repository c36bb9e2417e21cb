package httpapi

import (
	"context"
)

// serverBaseCtx is canceled on shutdown; handlers stop work when it is done.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers. nil
// resets it to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts returns a context derived from a that is also canceled when b
// is done. The cancel func must be called when the handler ends.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
