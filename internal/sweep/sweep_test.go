package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firerecipes/backend/internal/models"
	"github.com/firerecipes/backend/internal/store"
)

func seed(t *testing.T, s *store.MemStore, isPublished bool, publishDate time.Time) string {
	t.Helper()
	id, err := s.Add(context.Background(), models.Recipe{
		Name:        "Seeded",
		Category:    "vegetables",
		Directions:  "chop",
		Ingredients: []string{"veg"},
		IsPublished: isPublished,
		PublishDate: publishDate,
		ImageURL:    "https://example.com/o/i%2Fx.jpg?alt=media",
	})
	require.NoError(t, err)
	return id
}

func TestRunPublishesDueRecipes(t *testing.T) {
	s := store.NewMemStore()
	now := time.Unix(1700000000, 0)

	due := seed(t, s, false, now.Add(-time.Hour))
	exactlyNow := seed(t, s, false, now)
	future := seed(t, s, false, now.Add(time.Hour))
	alreadyPublished := seed(t, s, true, now.Add(-time.Hour))

	sweeper := NewSweeper(s)
	sweeper.now = func() time.Time { return now }
	require.NoError(t, sweeper.Run(context.Background()))

	for id, want := range map[string]bool{
		due:              true,
		exactlyNow:       true,
		future:           false,
		alreadyPublished: true,
	} {
		r, ok := s.Get(id)
		require.True(t, ok)
		assert.Equal(t, want, r.IsPublished, "recipe %s", id)
	}
}

func TestRunOnEmptyCollection(t *testing.T) {
	sweeper := NewSweeper(store.NewMemStore())
	assert.NoError(t, sweeper.Run(context.Background()))
}

func TestRunLeavesOtherFieldsAlone(t *testing.T) {
	s := store.NewMemStore()
	now := time.Unix(1700000000, 0)
	id := seed(t, s, false, now.Add(-time.Minute))

	sweeper := NewSweeper(s)
	sweeper.now = func() time.Time { return now }
	require.NoError(t, sweeper.Run(context.Background()))

	r, ok := s.Get(id)
	require.True(t, ok)
	assert.True(t, r.IsPublished)
	assert.Equal(t, "Seeded", r.Name)
	assert.Equal(t, []string{"veg"}, r.Ingredients)
}
