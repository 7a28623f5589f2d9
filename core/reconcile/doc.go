// Package reconcile synchronises the movie-artist join table against a
// submitted selection using a minimal diff.
//
// A single engine serves both directions of the many-to-many relation. The
// owner (a movie or an artist) is described through the Owner interface, which
// exposes its Role, its id and its current join rows. The caller supplies the
// candidate universe: every artist id when a movie owns the links, every movie
// id when an artist does.
//
// # Architecture
//
// 1. BuildPlan: a pure function from (current links, target ids, universe) to
//    a Plan of insert and remove actions plus a summary.
//
// 2. ApplyPlan: executes a plan against a LinkStore. Removals that find no row
//    fail with ErrInconsistentState; nothing is committed here, the caller owns
//    the transaction.
//
// 3. Reconcile / ReconcileAdapter: plan and apply in one call.
//
// # Policy
//
//   - A nil target clears every link of the owner.
//   - Target ids outside the universe are ignored and listed in Plan.Ignored,
//     unless Options.StrictReferences is set, in which case BuildPlan returns
//     ErrInvalidReference.
//   - Submitted strings are converted with ParseSelection before any of this
//     runs; a malformed value is a *ParseError.
//
// # Usage Example
//
//	err := db.Transaction(func(tx *gorm.DB) error {
//	    owner := catalog.NewMovieOwner(&movie)
//	    plan, err := reconcile.ReconcileAdapter(ctx, owner, artistIDs, tx, catalog.NewLinkStore(tx), opts)
//	    if err != nil {
//	        return err
//	    }
//	    log.Debug("links reconciled", zap.Int("inserted", plan.Summary.Insertions))
//	    return nil
//	})
package reconcile
