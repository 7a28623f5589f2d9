package reconcile

// Role identifies which side of the movie-artist join an owner occupies.
type Role string

const (
	// RoleMovie means the owner is a movie and the related entities are artists.
	RoleMovie Role = "movie"
	// RoleArtist means the owner is an artist and the related entities are movies.
	RoleArtist Role = "artist"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleMovie, RoleArtist:
		return true
	default:
		return false
	}
}

// Related returns the role of the entities on the other side of the join.
func (r Role) Related() Role {
	if r == RoleMovie {
		return RoleArtist
	}
	return RoleMovie
}

// Link is the identity of one join row. It has no surrogate key: two links
// are the same row exactly when both ids match.
type Link struct {
	MovieID  int `json:"movie_id"`
	ArtistID int `json:"artist_id"`
}

// NewLink builds the join identity for an owner of role r and one related id.
func (r Role) NewLink(ownerID, relatedID int) Link {
	if r == RoleMovie {
		return Link{MovieID: ownerID, ArtistID: relatedID}
	}
	return Link{MovieID: relatedID, ArtistID: ownerID}
}

// Owner returns the id on the owner's side of the link for role r.
func (l Link) Owner(r Role) int {
	if r == RoleMovie {
		return l.MovieID
	}
	return l.ArtistID
}

// Related returns the id on the varying side of the link for role r.
func (l Link) Related(r Role) int {
	if r == RoleMovie {
		return l.ArtistID
	}
	return l.MovieID
}

// ActionType represents the type of join mutation.
type ActionType string

const (
	// ActionInsertLink adds a join row that the target set requires.
	ActionInsertLink ActionType = "insert_link"
	// ActionRemoveLink removes a join row the target set no longer contains.
	ActionRemoveLink ActionType = "remove_link"
)

// Action represents a planned join mutation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Link is the join row affected.
	Link Link `json:"link"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan contains the minimal diff between an owner's current links and a target set.
type Plan struct {
	// Role is the side of the join the owner occupies.
	Role Role `json:"role"`

	// OwnerID is the id of the movie or artist being reconciled.
	OwnerID int `json:"owner_id"`

	// Actions contains the planned insertions and removals.
	Actions []Action `json:"actions"`

	// Ignored lists target ids that are not part of the candidate universe.
	Ignored []int `json:"ignored,omitempty"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Cleared is set when the target set was absent and every link is dropped.
	Cleared bool `json:"cleared"`

	// Insertions counts planned insert actions.
	Insertions int `json:"insertions"`

	// Removals counts planned remove actions.
	Removals int `json:"removals"`

	// Unchanged counts candidates already in agreement with the target set.
	Unchanged int `json:"unchanged"`

	// Ignored counts target ids outside the candidate universe.
	Ignored int `json:"ignored"`
}

// IsEmpty reports whether applying the plan would change nothing.
func (p *Plan) IsEmpty() bool {
	return len(p.Actions) == 0
}

// Options controls reconcile behavior.
type Options struct {
	// StrictReferences rejects target ids outside the candidate universe with
	// ErrInvalidReference instead of ignoring them.
	StrictReferences bool

	// DryRun plans without touching the store.
	DryRun bool
}
