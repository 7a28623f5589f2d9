package reconcile

import (
	"fmt"
	"sort"
)

// BuildPlan computes the minimal set of link insertions and removals that
// makes the owner's links equal target ∩ universe.
//
// A nil target means no selection was submitted: every current link is
// removed, whether or not its related id is part of the universe. A non-nil
// target is diffed candidate by candidate over the universe, so current links
// outside the universe are left alone.
//
// BuildPlan is pure; it neither reads nor writes the store.
func BuildPlan(owner Owner, target []int, universe []int, opts Options) (*Plan, error) {
	role := owner.Role()
	ownerID := owner.OwnerID()
	if !role.IsValid() || ownerID <= 0 {
		return nil, fmt.Errorf("%w: role=%q id=%d", ErrInvalidOwner, role, ownerID)
	}

	plan := &Plan{
		Role:    role,
		OwnerID: ownerID,
		Actions: []Action{},
	}

	current := currentSet(owner)

	if target == nil {
		plan.Summary.Cleared = true
		for _, relatedID := range sortedKeys(current) {
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionRemoveLink,
				Link:   role.NewLink(ownerID, relatedID),
				Reason: "no selection submitted",
			})
			plan.Summary.Removals++
		}
		return plan, nil
	}

	wanted := toSet(target)
	candidates := toSet(universe)

	// Dangling ids are checked up front so strict mode fails before any action is planned.
	for _, id := range sortedKeys(wanted) {
		if _, ok := candidates[id]; ok {
			continue
		}
		if opts.StrictReferences {
			return nil, fmt.Errorf("%w: %s %d", ErrInvalidReference, role.Related(), id)
		}
		plan.Ignored = append(plan.Ignored, id)
	}
	plan.Summary.Ignored = len(plan.Ignored)

	for _, id := range sortedKeys(candidates) {
		_, selected := wanted[id]
		_, linked := current[id]

		switch {
		case selected && !linked:
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionInsertLink,
				Link:   role.NewLink(ownerID, id),
				Reason: "selected but not linked",
			})
			plan.Summary.Insertions++
		case !selected && linked:
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionRemoveLink,
				Link:   role.NewLink(ownerID, id),
				Reason: "linked but not selected",
			})
			plan.Summary.Removals++
		default:
			plan.Summary.Unchanged++
		}
	}

	return plan, nil
}

// currentSet indexes the owner's links by related id. Links belonging to a
// different owner are skipped.
func currentSet(owner Owner) map[int]struct{} {
	role := owner.Role()
	ownerID := owner.OwnerID()

	set := make(map[int]struct{})
	for _, link := range owner.Links() {
		if link.Owner(role) != ownerID {
			continue
		}
		set[link.Related(role)] = struct{}{}
	}
	return set
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// sortedKeys returns the keys of set in ascending order for deterministic plans.
func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
