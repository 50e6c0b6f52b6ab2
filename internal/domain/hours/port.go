package hours

import "context"

type Repo interface {
	// ReplaceForStore drops the store's current rules and installs the new
	// set in one transaction. Imports are replace-only, rules never mutate.
	ReplaceForStore(ctx context.Context, storeID string, rules []Rule) error
	ListByStore(ctx context.Context, storeID string) ([]Rule, error)
}
