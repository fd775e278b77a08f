package localauth

import "context"

type pageIDContextKey struct{}

// WithPageID attaches the identifier of the page driving the current
// operation to ctx. The Engine records it in audit events so multi-tab
// interleavings can be reconstructed after the fact.
func WithPageID(ctx context.Context, pageID string) context.Context {
	return context.WithValue(ctx, pageIDContextKey{}, pageID)
}

func pageIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	pageID, _ := ctx.Value(pageIDContextKey{}).(string)
	return pageID
}
