package triggers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firerecipes/backend/internal/models"
	"github.com/firerecipes/backend/internal/store"
)

// fakeImageStore records every delete call.
type fakeImageStore struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeImageStore) DeleteImage(ctx context.Context, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, imageURL)
	return f.err
}

func recipe(isPublished bool, imageURL string) models.Recipe {
	return models.Recipe{
		Name:        "Chowder",
		Category:    "fishSeafood",
		Directions:  "simmer",
		Ingredients: []string{"clams", "cream"},
		IsPublished: isPublished,
		PublishDate: time.Unix(1700000000, 0),
		ImageURL:    imageURL,
	}
}

func counts(t *testing.T, s *store.MemStore) (all, pub int64) {
	t.Helper()
	var err error
	all, err = s.Count(context.Background(), store.CounterAll)
	require.NoError(t, err)
	pub, err = s.Count(context.Background(), store.CounterPublished)
	require.NoError(t, err)
	return all, pub
}

func TestRecipeCreatedIncrementsCounters(t *testing.T) {
	s := store.NewMemStore()
	m := NewCounterMaintainer(s, &fakeImageStore{})
	ctx := context.Background()

	require.NoError(t, m.RecipeCreated(ctx, recipe(true, "")))
	all, pub := counts(t, s)
	assert.Equal(t, int64(1), all)
	assert.Equal(t, int64(1), pub)

	require.NoError(t, m.RecipeCreated(ctx, recipe(false, "")))
	all, pub = counts(t, s)
	assert.Equal(t, int64(2), all)
	assert.Equal(t, int64(1), pub)
}

func TestRecipeDeletedDecrementsAndCleansUpImage(t *testing.T) {
	s := store.NewMemStore()
	images := &fakeImageStore{}
	m := NewCounterMaintainer(s, images)
	ctx := context.Background()

	require.NoError(t, m.RecipeCreated(ctx, recipe(true, "")))
	require.NoError(t, m.RecipeCreated(ctx, recipe(true, "")))

	imageURL := "https://example.com/o/images%2Fchowder.jpg?alt=media"
	require.NoError(t, m.RecipeDeleted(ctx, recipe(true, imageURL)))

	all, pub := counts(t, s)
	assert.Equal(t, int64(1), all)
	assert.Equal(t, int64(1), pub)
	assert.Equal(t, []string{imageURL}, images.deleted)
}

func TestRecipeDeletedWithEmptyImageSkipsBlobStore(t *testing.T) {
	s := store.NewMemStore()
	images := &fakeImageStore{}
	m := NewCounterMaintainer(s, images)
	ctx := context.Background()

	require.NoError(t, m.RecipeCreated(ctx, recipe(false, "")))
	require.NoError(t, m.RecipeDeleted(ctx, recipe(false, "")))

	all, pub := counts(t, s)
	assert.Zero(t, all)
	assert.Zero(t, pub)
	assert.Empty(t, images.deleted)
}

func TestRecipeDeletedImageFailureNeverBlocksCounters(t *testing.T) {
	s := store.NewMemStore()
	images := &fakeImageStore{err: errors.New("object vanished")}
	m := NewCounterMaintainer(s, images)
	ctx := context.Background()

	require.NoError(t, m.RecipeCreated(ctx, recipe(true, "")))
	err := m.RecipeDeleted(ctx, recipe(true, "https://example.com/o/x%2Fy.jpg?alt=media"))
	require.NoError(t, err)

	all, pub := counts(t, s)
	assert.Zero(t, all)
	assert.Zero(t, pub)
}

func TestRecipeUpdatedPublishTransitions(t *testing.T) {
	tests := []struct {
		name          string
		before, after bool
		seedPub       int64
		wantPub       int64
		seedCounter   bool
	}{
		{name: "no change published", before: true, after: true, seedCounter: true, seedPub: 3, wantPub: 3},
		{name: "no change unpublished", before: false, after: false, seedCounter: true, seedPub: 3, wantPub: 3},
		{name: "flip to published", before: false, after: true, seedCounter: true, seedPub: 3, wantPub: 4},
		{name: "flip to unpublished", before: true, after: false, seedCounter: true, seedPub: 3, wantPub: 2},
		{name: "flip to published with missing counter", before: false, after: true, wantPub: 1},
		{name: "flip to unpublished with missing counter", before: true, after: false, wantPub: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemStore()
			ctx := context.Background()
			if tt.seedCounter {
				require.NoError(t, s.Adjust(ctx, store.CounterPublished, 0, tt.seedPub))
			}
			m := NewCounterMaintainer(s, &fakeImageStore{})

			require.NoError(t, m.RecipeUpdated(ctx, recipe(tt.before, ""), recipe(tt.after, "")))

			pub, err := s.Count(ctx, store.CounterPublished)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPub, pub)
			// "all" is never touched by updates
			all, err := s.Count(ctx, store.CounterAll)
			require.NoError(t, err)
			assert.Zero(t, all)
		})
	}
}

// Counters must converge for every interleaving because each adjustment is a
// relative increment, never an absolute overwrite.
func TestCountersConvergeOverInterleavedEvents(t *testing.T) {
	s := store.NewMemStore()
	m := NewCounterMaintainer(s, &fakeImageStore{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			isPublished := i%2 == 0
			_ = m.RecipeCreated(ctx, recipe(isPublished, ""))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.RecipeDeleted(ctx, recipe(true, ""))
		}()
	}
	wg.Wait()

	all, pub := counts(t, s)
	assert.Equal(t, int64(15), all)
	assert.Equal(t, int64(5), pub)
}

func TestPublishLifecycleEndToEnd(t *testing.T) {
	s := store.NewMemStore()
	images := &fakeImageStore{}
	m := NewCounterMaintainer(s, images)
	ctx := context.Background()

	// created unpublished, later published, finally deleted
	r := recipe(false, "https://example.com/o/images%2Fchowder.jpg?alt=media")
	require.NoError(t, m.RecipeCreated(ctx, r))

	flipped := r
	flipped.IsPublished = true
	require.NoError(t, m.RecipeUpdated(ctx, r, flipped))

	all, pub := counts(t, s)
	assert.Equal(t, int64(1), all)
	assert.Equal(t, int64(1), pub)

	require.NoError(t, m.RecipeDeleted(ctx, flipped))
	all, pub = counts(t, s)
	assert.Zero(t, all)
	assert.Zero(t, pub)
	assert.Len(t, images.deleted, 1)
}
