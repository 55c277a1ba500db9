package output

import "context"

// ResolverPort turns search-engine indirection links into the real store URL.
// Resolve is best-effort: on any failure it returns the input unchanged and
// never an error, so callers always make forward progress.
type ResolverPort interface {
	ShouldResolve(url string) bool
	Resolve(ctx context.Context, dirtyURL string) string
}
