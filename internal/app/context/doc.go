// Package context carries per-call state through the application services.
//
// Fetch memoizes lookups made while serving one call, so a collection read
// to check ownership is not read again by the next step:
//
//	rc := context.New(ctx)
//	col, err := context.Fetch(rc, "collection:"+id, func(ctx context.Context) (*domain.Collection, error) {
//	    return collections.Get(ctx, userID, id)
//	})
//
// Stage and Commit run writes that must succeed together. Creating a
// collection around its first quote is staged this way; if the add fails
// the new collection is deleted again.
package context
