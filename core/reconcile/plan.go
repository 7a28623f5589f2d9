package reconcile

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ApplyPlan executes the actions of a plan against the store.
// Removals run first, one at a time, so that a missing row is reported
// against the exact link. Insertions use the batch path when the store
// supports it. The first failure aborts; the caller is expected to roll back
// the surrounding transaction.
func ApplyPlan(ctx context.Context, store LinkStore, plan *Plan) (executed int, err error) {
	if plan == nil || plan.IsEmpty() {
		return 0, nil
	}

	var (
		removals   []Link
		insertions []Link
	)
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionRemoveLink:
			removals = append(removals, action.Link)
		case ActionInsertLink:
			insertions = append(insertions, action.Link)
		default:
			return executed, fmt.Errorf("unknown action type %q", action.Type)
		}
	}

	for _, link := range removals {
		if err := store.RemoveLink(ctx, link); err != nil {
			return executed, fmt.Errorf("failed to remove link movie=%d artist=%d: %w", link.MovieID, link.ArtistID, err)
		}
		executed++
	}

	if len(insertions) == 0 {
		return executed, nil
	}

	if batch, ok := store.(BatchInserter); ok {
		if err := batch.InsertLinks(ctx, insertions); err != nil {
			return executed, fmt.Errorf("failed to batch insert %d links: %w", len(insertions), err)
		}
		executed += len(insertions)
		return executed, nil
	}

	for _, link := range insertions {
		if err := store.InsertLink(ctx, link); err != nil {
			return executed, fmt.Errorf("failed to insert link movie=%d artist=%d: %w", link.MovieID, link.ArtistID, err)
		}
		executed++
	}

	return executed, nil
}

// Reconcile plans and, unless opts.DryRun is set, applies the diff for one owner.
// It returns the plan so callers can log or report what changed.
func Reconcile(ctx context.Context, owner Owner, target []int, universe []int, store LinkStore, opts Options) (*Plan, error) {
	plan, err := BuildPlan(owner, target, universe, opts)
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		return plan, nil
	}

	if _, err := ApplyPlan(ctx, store, plan); err != nil {
		return plan, err
	}
	return plan, nil
}

// ReconcileAdapter loads the adapter's candidate universe through db and reconciles.
// db and store should share the same transaction.
func ReconcileAdapter(ctx context.Context, adapter Adapter, target []int, db *gorm.DB, store LinkStore, opts Options) (*Plan, error) {
	universe, err := adapter.LoadUniverse(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s universe: %w", adapter.Role().Related(), err)
	}
	return Reconcile(ctx, adapter, target, universe, store, opts)
}
