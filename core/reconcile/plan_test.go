package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory LinkStore used to observe final link sets.
type memStore struct {
	rows     map[Link]struct{}
	inserted int
	removed  int
}

func newMemStore(links ...Link) *memStore {
	s := &memStore{rows: make(map[Link]struct{})}
	for _, l := range links {
		s.rows[l] = struct{}{}
	}
	return s
}

func (s *memStore) InsertLink(ctx context.Context, link Link) error {
	if _, ok := s.rows[link]; ok {
		return fmt.Errorf("%w: duplicate", ErrInconsistentState)
	}
	s.rows[link] = struct{}{}
	s.inserted++
	return nil
}

func (s *memStore) RemoveLink(ctx context.Context, link Link) error {
	if _, ok := s.rows[link]; !ok {
		return fmt.Errorf("%w: missing", ErrInconsistentState)
	}
	delete(s.rows, link)
	s.removed++
	return nil
}

// owner returns a movie owner reflecting the store's current rows.
func (s *memStore) owner(movieID int) *mockOwner {
	o := &mockOwner{role: RoleMovie, id: movieID}
	for l := range s.rows {
		if l.MovieID == movieID {
			o.links = append(o.links, l)
		}
	}
	return o
}

func (s *memStore) artistsOf(movieID int) []int {
	return sortedKeys(currentSet(s.owner(movieID)))
}

// mockStore records calls through testify/mock.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) InsertLink(ctx context.Context, link Link) error {
	return m.Called(ctx, link).Error(0)
}

func (m *mockStore) RemoveLink(ctx context.Context, link Link) error {
	return m.Called(ctx, link).Error(0)
}

// batchStore adds the batch insert path on top of mockStore.
type batchStore struct {
	mockStore
}

func (m *batchStore) InsertLinks(ctx context.Context, links []Link) error {
	return m.Called(ctx, links).Error(0)
}

func TestReconcile_FinalStateEqualsTargetInUniverse(t *testing.T) {
	universe := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name    string
		current []int
		target  []int
		want    []int
	}{
		{"Disjoint", []int{1, 2}, []int{3, 4}, []int{3, 4}},
		{"Partial overlap", []int{1, 2, 3}, []int{2, 3, 4}, []int{2, 3, 4}},
		{"Dangling ignored", []int{1}, []int{1, 99}, []int{1}},
		{"Empty target", []int{1, 2}, []int{}, []int{}},
		{"Nil target clears", []int{1, 2, 3}, nil, []int{}},
		{"From nothing", []int{}, []int{5, 1}, []int{1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			for _, a := range tt.current {
				store.rows[Link{MovieID: 1, ArtistID: a}] = struct{}{}
			}

			_, err := Reconcile(context.Background(), store.owner(1), tt.target, universe, store, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.artistsOf(1))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	store := newMemStore(Link{MovieID: 1, ArtistID: 1}, Link{MovieID: 1, ArtistID: 2})
	universe := []int{1, 2, 3, 4}
	target := []int{2, 4}

	first, err := Reconcile(context.Background(), store.owner(1), target, universe, store, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Summary.Insertions)
	assert.Equal(t, 1, first.Summary.Removals)

	second, err := Reconcile(context.Background(), store.owner(1), target, universe, store, Options{})
	require.NoError(t, err)
	assert.True(t, second.IsEmpty())
	assert.Equal(t, 0, second.Summary.Insertions)
	assert.Equal(t, 0, second.Summary.Removals)

	assert.Equal(t, []int{2, 4}, store.artistsOf(1))
	assert.Equal(t, 1, store.inserted)
	assert.Equal(t, 1, store.removed)
}

func TestReconcile_DryRun(t *testing.T) {
	store := new(mockStore)

	plan, err := Reconcile(context.Background(), movieWith(1, 1), []int{2}, []int{1, 2}, store, Options{DryRun: true})
	require.NoError(t, err)
	assert.Len(t, plan.Actions, 2)
	store.AssertNotCalled(t, "InsertLink", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "RemoveLink", mock.Anything, mock.Anything)
}

func TestApplyPlan_InconsistentStatePropagates(t *testing.T) {
	store := new(mockStore)
	store.On("RemoveLink", mock.Anything, Link{MovieID: 1, ArtistID: 1}).
		Return(fmt.Errorf("%w: row not found", ErrInconsistentState))

	plan, err := BuildPlan(movieWith(1, 1), []int{2}, []int{1, 2}, Options{})
	require.NoError(t, err)

	executed, err := ApplyPlan(context.Background(), store, plan)
	assert.Equal(t, 0, executed)
	assert.ErrorIs(t, err, ErrInconsistentState)
	// Insertions are never attempted after a failed removal.
	store.AssertNotCalled(t, "InsertLink", mock.Anything, mock.Anything)
}

func TestApplyPlan_UsesBatchInsert(t *testing.T) {
	store := new(batchStore)
	store.On("RemoveLink", mock.Anything, Link{MovieID: 1, ArtistID: 1}).Return(nil)
	store.On("InsertLinks", mock.Anything, []Link{{MovieID: 1, ArtistID: 2}, {MovieID: 1, ArtistID: 3}}).Return(nil)

	plan, err := BuildPlan(movieWith(1, 1), []int{2, 3}, []int{1, 2, 3}, Options{})
	require.NoError(t, err)

	executed, err := ApplyPlan(context.Background(), store, plan)
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "InsertLink", mock.Anything, mock.Anything)
}

func TestApplyPlan_BatchInsertError(t *testing.T) {
	store := new(batchStore)
	store.On("InsertLinks", mock.Anything, mock.Anything).Return(fmt.Errorf("boom"))

	plan, err := BuildPlan(movieWith(1), []int{2}, []int{2}, Options{})
	require.NoError(t, err)

	executed, err := ApplyPlan(context.Background(), store, plan)
	assert.Equal(t, 0, executed)
	assert.ErrorContains(t, err, "boom")
}

func TestApplyPlan_Empty(t *testing.T) {
	store := new(mockStore)

	executed, err := ApplyPlan(context.Background(), store, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, executed)

	executed, err = ApplyPlan(context.Background(), store, &Plan{})
	assert.NoError(t, err)
	assert.Equal(t, 0, executed)
}

func TestApplyPlan_UnknownAction(t *testing.T) {
	store := new(mockStore)
	plan := &Plan{Actions: []Action{{Type: "rename"}}}

	_, err := ApplyPlan(context.Background(), store, plan)
	assert.ErrorContains(t, err, "unknown action type")
}
