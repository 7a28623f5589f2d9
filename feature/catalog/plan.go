package catalog

import (
	"movies-app/core/reconcile"

	"go.uber.org/zap"
)

// PlanFields renders a reconcile plan summary as log fields.
func PlanFields(plan *reconcile.Plan) []zap.Field {
	if plan == nil {
		return nil
	}
	s := plan.Summary
	return []zap.Field{
		zap.String("role", string(plan.Role)),
		zap.Int("owner_id", plan.OwnerID),
		zap.Bool("cleared", s.Cleared),
		zap.Int("insertions", s.Insertions),
		zap.Int("removals", s.Removals),
		zap.Int("unchanged", s.Unchanged),
		zap.Ints("ignored", plan.Ignored),
	}
}
