package reconcile

import (
	"context"

	"gorm.io/gorm"
)

// Owner is the side-specific view of the entity whose links are reconciled.
// A movie and an artist expose the same three things: which side they sit on,
// their own id, and their current join collection.
type Owner interface {
	// Role returns the side of the join this owner occupies.
	Role() Role

	// OwnerID returns the persisted id of the owner. It must be non-zero.
	OwnerID() int

	// Links returns the owner's current join rows, as loaded together with the owner.
	Links() []Link
}

// Adapter is an Owner that can also load its candidate universe: every
// artist for a movie owner, every movie for an artist owner.
type Adapter interface {
	Owner

	// LoadUniverse returns the ids of all entities on the related side.
	// Implementations should select the id column only.
	LoadUniverse(ctx context.Context, db *gorm.DB) ([]int, error)
}

// LinkStore applies join mutations. Implementations must not commit; the
// caller owns the surrounding transaction.
type LinkStore interface {
	// InsertLink adds one join row.
	InsertLink(ctx context.Context, link Link) error

	// RemoveLink deletes one join row. It returns an error wrapping
	// ErrInconsistentState when the row is not present in the store.
	RemoveLink(ctx context.Context, link Link) error
}

// BatchInserter is implemented by stores that can insert many rows in one statement.
type BatchInserter interface {
	InsertLinks(ctx context.Context, links []Link) error
}
