// Package stores holds one collection store per backend resource. Every store
// follows the same contract: Load fetches the whole collection, a mutation
// issues exactly one request and on success re-fetches the whole collection
// (no merge logic), and on failure returns the error with the held snapshot
// untouched so the calling form can stay open. Filtering and searching happen
// client-side over the snapshot.
package stores

import (
	"context"
	"strings"
)

// mutate is the shared mutation contract: one request, then exactly one
// reload, and no reload at all when the request fails.
func mutate(ctx context.Context, op func(context.Context) error, reload func(context.Context) error) error {
	if err := op(ctx); err != nil {
		return err
	}
	return reload(ctx)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
