package game

import "context"

type holderKey struct{}

// NewContext returns a context carrying h
func NewContext(ctx context.Context, h *Holder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

// FromContext returns the holder stored in ctx. A missing holder is a wiring
// bug, so it panics.
func FromContext(ctx context.Context) *Holder {
	h, ok := ctx.Value(holderKey{}).(*Holder)
	if !ok || h == nil {
		panic("game: no holder in context")
	}
	return h
}
