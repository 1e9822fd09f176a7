package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/firerecipes/backend/internal/models"
)

// FirestoreStore implements RecipeStore and CounterStore on a Firestore
// database.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an existing Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) recipes() *firestore.CollectionRef {
	return s.client.Collection(RecipesCollection)
}

func (s *FirestoreStore) Add(ctx context.Context, r models.Recipe) (string, error) {
	ref, _, err := s.recipes().Add(ctx, r)
	if err != nil {
		return "", fmt.Errorf("failed to add recipe: %w", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, id string, r models.Recipe) error {
	if _, err := s.recipes().Doc(id).Set(ctx, r); err != nil {
		return fmt.Errorf("failed to replace recipe %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if _, err := s.recipes().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	return nil
}

// Find translates a Query into a Firestore read. The anonymous restriction is
// applied before any caller-supplied filter so unpublished recipes can never
// leak, whatever else the query asks for. Paging is offset-based: the page
// number control needs random access to arbitrary pages, which a start-after
// cursor cannot give; the cost is O(offset) work per page inside Firestore
// and possible drift between page fetches.
func (s *FirestoreStore) Find(ctx context.Context, q Query) ([]models.RecipeDoc, error) {
	fq := s.recipes().Query
	if !q.Authenticated {
		fq = fq.Where("isPublished", "==", true)
	}
	if q.Category != "" {
		fq = fq.Where("category", "==", q.Category)
	}
	if q.OrderByField != "" {
		dir := firestore.Asc
		if q.Descending() {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderByField, dir)
	}
	if q.PerPage > 0 {
		fq = fq.Limit(q.PerPage)
		if q.PageNumber > 0 {
			fq = fq.Offset(q.Offset())
		}
	}

	docs := []models.RecipeDoc{}
	it := fq.Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate recipes: %w", err)
		}
		var r models.Recipe
		if err := snap.DataTo(&r); err != nil {
			return nil, fmt.Errorf("failed to decode recipe %s: %w", snap.Ref.ID, err)
		}
		docs = append(docs, models.NewRecipeDoc(snap.Ref.ID, r))
	}
	return docs, nil
}

func (s *FirestoreStore) Unpublished(ctx context.Context) ([]models.RecipeDoc, error) {
	docs := []models.RecipeDoc{}
	it := s.recipes().Where("isPublished", "==", false).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate unpublished recipes: %w", err)
		}
		var r models.Recipe
		if err := snap.DataTo(&r); err != nil {
			return nil, fmt.Errorf("failed to decode recipe %s: %w", snap.Ref.ID, err)
		}
		docs = append(docs, models.NewRecipeDoc(snap.Ref.ID, r))
	}
	return docs, nil
}

func (s *FirestoreStore) MarkPublished(ctx context.Context, id string) error {
	_, err := s.recipes().Doc(id).Set(ctx, map[string]interface{}{
		"isPublished": true,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to mark recipe %s published: %w", id, err)
	}
	return nil
}

type counterDoc struct {
	Count int64 `firestore:"count"`
}

func (s *FirestoreStore) Count(ctx context.Context, key string) (int64, error) {
	snap, err := s.client.Collection(CountsCollection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	var c counterDoc
	if err := snap.DataTo(&c); err != nil {
		return 0, fmt.Errorf("failed to decode counter %s: %w", key, err)
	}
	return c.Count, nil
}

// Adjust is the narrow read-then-increment-or-create operation the counter
// maintainer funnels every counter write through. An existing document gets a
// server-side atomic increment, so concurrent adjustments interleave safely;
// a missing one is created at the initial value. The two steps are not
// transactional with the recipe write that triggered them.
func (s *FirestoreStore) Adjust(ctx context.Context, key string, delta, initial int64) error {
	if key != CounterAll && key != CounterPublished {
		return fmt.Errorf("unknown counter key %q", key)
	}
	ref := s.client.Collection(CountsCollection).Doc(key)
	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		if _, err := ref.Set(ctx, counterDoc{Count: initial}); err != nil {
			return fmt.Errorf("failed to create counter %s: %w", key, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "count", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return fmt.Errorf("failed to adjust counter %s: %w", key, err)
	}
	return nil
}
