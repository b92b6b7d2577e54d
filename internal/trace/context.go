package trace

import "context"

// ctxState is what a context carries: the tracer and the current span.
type ctxState struct {
	tracer Tracer
	span   uint64
}

type stateKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(stateKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer of ctx, Nop if there is none.
func FromContext(ctx context.Context) Tracer { return stateOf(ctx).tracer }

// WithTracer attaches t to ctx. The current span is reset.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, stateKey{}, ctxState{tracer: t})
}

// CurrentSpan returns the ID of the span current in ctx, 0 if none.
func CurrentSpan(ctx context.Context) uint64 { return stateOf(ctx).span }

// WithSpan makes span id current, keeping the tracer of ctx.
func WithSpan(ctx context.Context, id uint64) context.Context {
	st := stateOf(ctx)
	st.span = id
	return context.WithValue(ctx, stateKey{}, st)
}
